package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/service"
)

// App is the interactive command loop of the client. One App instance owns
// one server session at a time; the unsealed envelope lives only inside that
// session and is dropped on logout or exit.
type App struct {
	services *service.ClientServices
	logger   *logger.Logger

	in  io.Reader
	out io.Writer

	session *service.ClientSession
}

func NewApp(services *service.ClientServices, logger *logger.Logger) *App {
	return &App{
		services: services,
		logger:   logger,
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// Run reads commands line by line until EOF or `exit`. A live session is
// revoked on the way out so the server is not left holding it.
func (a *App) Run() error {
	ctx := context.Background()

	fmt.Fprintln(a.out, "passway client, type `help` for the list of commands")

	scanner := bufio.NewScanner(a.in)
	for {
		fmt.Fprint(a.out, "passway> ")
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "exit" || fields[0] == "quit" {
			break
		}

		if err := a.dispatch(ctx, fields[0], fields[1:]); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read command: %w", err)
	}

	if a.session != nil {
		if err := a.services.AuthService.Logout(ctx); err != nil {
			a.logger.Warn().Err(err).Msg("logout on exit failed")
		}
		a.session = nil
	}

	return nil
}

func (a *App) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "help":
		a.printHelp()
		return nil
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx)
	case "logout":
		return a.logout(ctx)
	case "list":
		return a.list(ctx)
	case "put":
		return a.put(ctx, args)
	case "get":
		return a.get(ctx, args)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *App) register(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: register <name> [display-name]")
	}

	displayName := args[0]
	if len(args) == 2 {
		displayName = args[1]
	}

	if err := a.services.AuthService.Register(ctx, args[0], displayName); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "registered, use `login` to open a session")
	return nil
}

func (a *App) login(ctx context.Context) error {
	if a.session != nil {
		return errors.New("already logged in")
	}

	session, err := a.services.AuthService.Login(ctx)
	if err != nil {
		return err
	}

	a.session = session
	fmt.Fprintf(a.out, "logged in as credential %s\n", session.CredentialID)
	return nil
}

func (a *App) logout(ctx context.Context) error {
	if a.session == nil {
		return errLoginFirst
	}

	if err := a.services.AuthService.Logout(ctx); err != nil {
		return err
	}

	a.session = nil
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *App) list(ctx context.Context) error {
	if a.session == nil {
		return errLoginFirst
	}

	items, err := a.services.ContentService.List(ctx)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "no content stored")
		return nil
	}

	for _, item := range items {
		fmt.Fprintf(a.out, "%s\t%d bytes\t%s\n", item.Name, item.Size, item.ModifiedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (a *App) put(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: put <name> <file>")
	}
	if a.session == nil {
		return errLoginFirst
	}

	plaintext, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[1], err)
	}

	if err := a.services.ContentService.Upload(ctx, a.session, args[0], plaintext); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "stored %q (%d bytes)\n", args[0], len(plaintext))
	return nil
}

func (a *App) get(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: get <name> [file]")
	}
	if a.session == nil {
		return errLoginFirst
	}

	plaintext, err := a.services.ContentService.Download(ctx, a.session, args[0])
	if err != nil {
		return err
	}

	if len(args) == 2 {
		if err := os.WriteFile(args[1], plaintext, 0o600); err != nil {
			return fmt.Errorf("write %s: %w", args[1], err)
		}
		fmt.Fprintf(a.out, "wrote %q (%d bytes)\n", args[1], len(plaintext))
		return nil
	}

	_, err = a.out.Write(plaintext)
	return err
}

func (a *App) printHelp() {
	fmt.Fprint(a.out, `commands:
  register <name> [display-name]  create a passkey and a key envelope on the server
  login                           open a session with the registered passkey
  logout                          revoke the current session
  list                            list stored content
  put <name> <file>               encrypt and upload a file
  get <name> [file]               download and decrypt a blob
  help                            show this message
  exit                            leave (revokes a live session)
`)
}
