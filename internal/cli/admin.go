package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	httputil "github.com/jmylchreest/studio/internal/util/http"
)

var adminServer string

// adminCmd groups commands that call a running server's admin API.
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Call the admin API of a running server",
	Long: `Call the admin API of a running server. The admin password is read from
the terminal, or from the first line of stdin when it is not a terminal.

Examples:
  # Check the password
  studio admin auth --server https://studio.example.com

  # Invalidate cached portfolio pages
  echo "$ADMIN_PASSWORD" | studio admin update-cache`,
}

var adminAuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Check the admin password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAdmin(cmd, "/api/admin/auth")
	},
}

var adminUpdateCacheCmd = &cobra.Command{
	Use:   "update-cache",
	Short: "Invalidate cached portfolio pages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAdmin(cmd, "/api/admin/update-cache")
	},
}

func init() {
	adminCmd.PersistentFlags().StringVar(&adminServer, "server", "http://localhost:8080", "base URL of the running server")
	adminCmd.AddCommand(adminAuthCmd)
	adminCmd.AddCommand(adminUpdateCacheCmd)
}

type adminReply struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Error    string `json:"error"`
	Revision uint64 `json:"revision"`
}

func runAdmin(cmd *cobra.Command, path string) error {
	password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	reply, err := postAdmin(cmd.Context(), strings.TrimRight(adminServer, "/")+path, password)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, reply.Message)
	if reply.Revision != 0 {
		fmt.Fprintf(out, "revision: %d\n", reply.Revision)
	}
	return nil
}

// postAdmin sends the password and decodes the reply. Non-2xx replies become
// errors carrying the server's message.
func postAdmin(ctx context.Context, url, password string) (*adminReply, error) {
	body, err := json.Marshal(map[string]string{"password": password})
	if err != nil {
		return nil, err
	}

	data, err := httputil.Post(ctx, url, body, httputil.FetchOptions{})
	if err != nil {
		var statusErr *httputil.StatusError
		if errors.As(err, &statusErr) {
			var reply adminReply
			if json.Unmarshal(statusErr.Body, &reply) == nil && reply.Error != "" {
				return nil, fmt.Errorf("server refused (HTTP %d): %s", statusErr.StatusCode, reply.Error)
			}
		}
		return nil, fmt.Errorf("admin request failed: %w", err)
	}

	var reply adminReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return nil, fmt.Errorf("invalid server reply: %w", err)
	}
	return &reply, nil
}

// readPassword prompts on a terminal without echo, otherwise reads one line.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Admin password: ")
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(secret), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
