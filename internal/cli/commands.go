package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"todo/internal/task"
	"todo/internal/ui"
)

func newListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(*configPath, func(s *session) error {
				printTasks(cmd.OutOrStdout(), s.tasks.Tasks())
				return nil
			})
		},
	}
}

func newAddCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task (title can be multiple words)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			return withSession(*configPath, func(s *session) error {
				t, err := s.tasks.Add(title)
				if errors.Is(err, task.ErrDuplicateTitle) {
					s.log.Info("duplicate task rejected", "title", title)
					return fmt.Errorf("%s: %s", ui.DuplicateTitle, ui.DuplicateMessage)
				}
				if err != nil {
					return fmt.Errorf("add: %w", err)
				}
				if err := s.db.InsertTask(t); err != nil {
					s.log.Error("write failed", "op", "add", "err", err)
					return err
				}
				s.log.Info("task added", "id", t.ID, "title", t.Title)
				fmt.Fprintln(cmd.OutOrStdout(), "added")
				return nil
			})
		},
	}
}

func newDoneCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle done for the task at a 1-based index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(*configPath, func(s *session) error {
				target, err := taskAt(s.tasks, args[0])
				if err != nil {
					return err
				}
				t, _ := s.tasks.ToggleDone(target.ID)
				if err := s.db.SetDone(t.ID, t.Done); err != nil {
					s.log.Error("write failed", "op", "toggle", "err", err)
					return err
				}
				s.log.Info("task toggled", "id", t.ID, "done", t.Done)
				fmt.Fprintln(cmd.OutOrStdout(), "toggled")
				return nil
			})
		},
	}
}

func newEditCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index> <title...>",
		Short: "Replace the title of the task at a 1-based index",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(*configPath, func(s *session) error {
				target, err := taskAt(s.tasks, args[0])
				if err != nil {
					return err
				}
				editor := task.NewEditor(s.tasks)
				editor.StartEdit(target.ID)
				editor.UpdateDraft(target.ID, strings.Join(args[1:], " "))
				t, _ := editor.CommitEdit(target.ID)
				if err := s.db.UpdateTitle(t.ID, t.Title); err != nil {
					s.log.Error("write failed", "op", "edit", "err", err)
					return err
				}
				s.log.Info("edit committed", "id", t.ID, "title", t.Title)
				fmt.Fprintln(cmd.OutOrStdout(), "edited")
				return nil
			})
		},
	}
}

func newRemoveCmd(configPath *string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove the task at a 1-based index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(*configPath, func(s *session) error {
				target, err := taskAt(s.tasks, args[0])
				if err != nil {
					return err
				}
				var c task.Confirmer = task.Answer(true)
				if !yes {
					c = promptConfirm(cmd.InOrStdin(), cmd.OutOrStdout())
				}
				t, removed := s.tasks.Remove(target.ID, c)
				if !removed {
					s.log.Info("removal declined", "id", t.ID)
					fmt.Fprintln(cmd.OutOrStdout(), "kept")
					return nil
				}
				if err := s.db.DeleteTask(t.ID); err != nil {
					s.log.Error("write failed", "op", "remove", "err", err)
					return err
				}
				s.log.Info("task removed", "id", t.ID, "title", t.Title)
				fmt.Fprintln(cmd.OutOrStdout(), "removed")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "remove without asking")
	return cmd
}

// promptConfirm asks on out and reads a y/N answer from in.
func promptConfirm(in io.Reader, out io.Writer) task.Confirmer {
	return task.ConfirmFunc(func(t task.Task) bool {
		fmt.Fprintf(out, "%s %q? %s [y/N] ", ui.RemoveTitle, t.Title, ui.RemoveMessage)
		line, _ := bufio.NewReader(in).ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})
}

func taskAt(store *task.Store, arg string) (task.Task, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return task.Task{}, fmt.Errorf("not a number: %s", arg)
	}
	tasks := store.Tasks()
	if n < 1 || n > len(tasks) {
		return task.Task{}, fmt.Errorf("index out of range: have %d, got %d", len(tasks), n)
	}
	return tasks[n-1], nil
}

func printTasks(w io.Writer, tasks []task.Task) {
	fmt.Fprintln(w, ui.CountLabel(len(tasks)))
	for i, t := range tasks {
		box := "[ ]"
		if t.Done {
			box = "[x]"
		}
		fmt.Fprintf(w, "%2d. %s %s\n", i+1, box, t.Title)
	}
}
