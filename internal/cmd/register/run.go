package register

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"campusconnect/internal/db"
	"campusconnect/internal/repo"
)

type Options struct {
	DBPath   string
	Username string
}

// Run creates an account without starting the UI. The password is read
// from the terminal with echo disabled.
func Run(args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	var opt Options
	fs.StringVar(&opt.DBPath, "db", "./data/campusconnect.db", "sqlite database path")
	fs.StringVar(&opt.Username, "username", "", "username to register")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(opt.Username) == "" {
		return errors.New("-username is required")
	}

	ctx := context.Background()
	d, err := db.Open(ctx, opt.DBPath)
	if err != nil {
		return err
	}
	defer d.Close()

	initialized, err := d.IsInitialized(ctx)
	if err != nil {
		return err
	}
	if !initialized {
		return errors.New("not initialized; run setup")
	}
	notesDir, ok, err := d.GetNotesDir(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("missing notes dir config; run setup")
	}

	password, err := promptPassword("Password for " + opt.Username)
	if err != nil {
		return err
	}

	r, err := repo.New(repo.Options{DB: d, NotesDir: notesDir})
	if err != nil {
		return err
	}
	a, err := r.Register(ctx, opt.Username, password)
	if err != nil {
		return err
	}
	fmt.Printf("registered %s (id %d)\n", a.Username, a.ID)
	return nil
}

func promptPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		for {
			fmt.Fprintf(os.Stderr, "%s: ", label)
			p1b, err := term.ReadPassword(fd)
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return "", err
			}
			fmt.Fprint(os.Stderr, "Confirm password: ")
			p2b, err := term.ReadPassword(fd)
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return "", err
			}
			p1 := strings.TrimSpace(string(p1b))
			p2 := strings.TrimSpace(string(p2b))
			if p1 == "" {
				fmt.Fprintln(os.Stderr, "password cannot be empty")
				continue
			}
			if p1 != p2 {
				fmt.Fprintln(os.Stderr, "passwords do not match")
				continue
			}
			return p1, nil
		}
	}

	// Non-interactive fallback (e.g. piped input).
	r := bufio.NewReader(os.Stdin)
	fmt.Fprintf(os.Stderr, "%s: ", label)
	p, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	p = strings.TrimSpace(p)
	if p == "" {
		return "", errors.New("password cannot be empty")
	}
	return p, nil
}
