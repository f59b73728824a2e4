package ports

import "os/exec"

// EditorOpener opens source posts in the user's editor
type EditorOpener interface {
	// OpenFile blocks until the editor exits
	OpenFile(path string) error

	// Command returns the editor process without starting it, for use with
	// bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}
