package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/hublogin/internal/core/domain"
)

var callbackCmd = &cobra.Command{
	Use:   "callback [CODE]",
	Short: "Submit an authorization code without the panel",
	Long: `Send a Globus authorization code to the server's oauth_callback_manual
endpoint.

When CODE is omitted it is read from standard input. On a terminal the
input is hidden. The code is sent exactly as given, without trimming.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCallback,
}

// stdinReader and stdinFd are replaced in tests.
var (
	stdinReader io.Reader = os.Stdin
	stdinFd               = int(os.Stdin.Fd())
)

func init() {
	rootCmd.AddCommand(callbackCmd)
}

func runCallback(cmd *cobra.Command, args []string) error {
	svc, err := requireLogin()
	if err != nil {
		return err
	}

	var code string
	if len(args) == 1 {
		code = args[0]
	} else {
		code, err = readCode(cmd)
		if err != nil {
			return err
		}
	}

	if code == "" {
		return domain.ErrEmptyCode
	}

	if err := svc.SubmitCode(cmd.Context(), code); err != nil {
		if cbErr, ok := domain.AsCallbackError(err); ok {
			cmd.PrintErrln(cbErr.Headline())
			for _, line := range domain.SplitDetails(cbErr.Details) {
				cmd.PrintErrln(line)
			}
			return ErrCodeRejected
		}
		return err
	}

	cmd.Println("Authorization code accepted.")
	return nil
}

// readCode reads one line from stdin, hiding input on a terminal.
// Only the line terminator is removed; the code is otherwise sent as typed.
func readCode(cmd *cobra.Command) (string, error) {
	if term.IsTerminal(stdinFd) {
		cmd.Print("Authorization code: ")
		raw, err := term.ReadPassword(stdinFd)
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("read code: %w", err)
		}
		return string(raw), nil
	}

	reader := bufio.NewReader(stdinReader)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read code: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
