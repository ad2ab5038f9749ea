package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <exercise-id>",
	Short: "Open your working copy in $EDITOR or the system handler",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		path, err := a.eng.WorkingCopy(args[0])
		if err != nil {
			return err
		}
		if reveal, _ := cmd.Flags().GetBool("reveal"); reveal {
			return revealInFileManager(path)
		}
		return openInEditor(path, os.Getenv("EDITOR"))
	}),
}

func init() {
	openCmd.Flags().Bool("reveal", false, "Show the working copy in the file manager instead")
}

// editorCommand builds the argv for opening path. editor may carry
// arguments ("code --wait"); an empty editor uses the platform opener.
func editorCommand(path, editor, goos string) ([]string, error) {
	if strings.TrimSpace(editor) != "" {
		argv, err := shlex.Split(editor)
		if err != nil {
			return nil, fmt.Errorf("parse $EDITOR: %w", err)
		}
		if len(argv) > 0 {
			return append(argv, path), nil
		}
	}
	switch goos {
	case "darwin":
		return []string{"open", path}, nil
	case "windows":
		return []string{"cmd", "/C", "start", "", path}, nil
	default:
		return []string{"xdg-open", path}, nil
	}
}

func openInEditor(path, editor string) error {
	argv, err := editorCommand(path, editor, runtime.GOOS)
	if err != nil {
		return err
	}
	c := exec.Command(argv[0], argv[1:]...)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("launch %s: %w", argv[0], err)
	}
	return nil
}

func revealInFileManager(path string) error {
	var argv []string
	switch runtime.GOOS {
	case "darwin":
		argv = []string{"open", "-R", path}
	case "windows":
		argv = []string{"explorer", "/select," + path}
	default:
		argv = []string{"xdg-open", filepath.Dir(path)}
	}
	if err := exec.Command(argv[0], argv[1:]...).Run(); err != nil {
		return fmt.Errorf("launch %s: %w", argv[0], err)
	}
	return nil
}
