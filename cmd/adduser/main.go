// Command adduser creates a principal directly in the ledger database.
// It exists because POST /add-user itself requires an authenticated
// principal.
//
//	adduser -username alice -email alice@example.com -role admin
//
// The password is read from the terminal without echo, or from the first
// line of stdin when stdin is not a terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/iliyamo/agri-supply-ledger/internal/config"
	"github.com/iliyamo/agri-supply-ledger/internal/database"
	"github.com/iliyamo/agri-supply-ledger/internal/model"
	"github.com/iliyamo/agri-supply-ledger/internal/repository"
	"github.com/iliyamo/agri-supply-ledger/internal/utils"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

type options struct {
	username string
	email    string
	role     string
	inactive bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.StringVar(&o.username, "username", "", "username (max 20 chars)")
	fs.StringVar(&o.email, "email", "", "email address")
	fs.StringVar(&o.role, "role", "admin", "role label")
	fs.BoolVar(&o.inactive, "inactive", false, "create the principal deactivated")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if o.username == "" || o.email == "" {
		return options{}, errors.New("-username and -email are required")
	}
	return o, nil
}

// promptPassword reads the password twice from a terminal, or once from a
// non-terminal reader.
func promptPassword(fd int, isTerminal bool, in io.Reader, out io.Writer) (string, error) {
	if !isTerminal {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		pw := strings.TrimRight(line, "\r\n")
		if pw == "" {
			return "", errors.New("empty password")
		}
		return pw, nil
	}

	fmt.Fprint(out, "Password: ")
	first, err := readPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	fmt.Fprint(out, "Repeat password: ")
	second, err := readPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	if len(first) == 0 {
		return "", errors.New("empty password")
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	password, err := promptPassword(fd, term.IsTerminal(fd), os.Stdin, os.Stderr)
	if err != nil {
		return err
	}
	hasher, err := utils.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	digest, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if cfg.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	u := &model.User{
		Username:     opts.username,
		PasswordHash: digest,
		Email:        opts.email,
		Role:         opts.role,
		IsActive:     !opts.inactive,
	}
	if err := repository.NewUserRepo(db).Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("user %q or email %q already exists", opts.username, opts.email)
		}
		return err
	}
	fmt.Fprintf(os.Stderr, "created user %s (role %s)\n", u.Username, u.Role)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "adduser:", err)
		os.Exit(1)
	}
}
