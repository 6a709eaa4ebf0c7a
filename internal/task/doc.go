// Package task holds the to-do list core: the ordered task collection with its
// duplicate and confirmation rules, and the inline edit sessions that write
// back into it. Nothing here knows about terminals or databases.
package task
