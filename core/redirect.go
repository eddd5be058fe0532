package core

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/blakeaaronroberts/smallsh/core/parse"
)

// openRedirects opens the redirection targets named by cmd. It is only
// called once a command is confirmed to execute; parsing a line never
// touches the filesystem. Output targets that do not exist yet are
// created with permission mode 0777, defeating the umask the way
// historical shells did.
func openRedirects(fsys afero.Fs, cmd *parse.Command) (in, out afero.File, err error) {
	if cmd.Stdin != "" {
		in, err = fsys.Open(cmd.Stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", cmd.Stdin, err)
		}
	}

	if cmd.Stdout != "" {
		flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		if cmd.Append {
			flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
		}

		_, statErr := fsys.Stat(cmd.Stdout)
		created := os.IsNotExist(statErr)

		out, err = fsys.OpenFile(cmd.Stdout, flags, 0777)
		if err != nil {
			if in != nil {
				in.Close()
			}
			return nil, nil, fmt.Errorf("open %s: %w", cmd.Stdout, err)
		}
		if created {
			_ = fsys.Chmod(cmd.Stdout, 0777)
		}
	}

	return in, out, nil
}
