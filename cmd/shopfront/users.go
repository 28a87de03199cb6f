package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopfront/shopfront/internal/auth"
	"github.com/shopfront/shopfront/internal/config"
	"github.com/shopfront/shopfront/internal/db/gen"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const usersCommandTimeout = 15 * time.Second

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage Shopfront accounts.",
}

// passwordFlags are the ways a command can receive a password.
type passwordFlags struct {
	value    string
	stdin    bool
	generate bool
}

func (f *passwordFlags) register(cmd *cobra.Command, who string) {
	cmd.Flags().StringVar(&f.value, "password", "", "Password for the "+who+" (discouraged; prefer --password-stdin)")
	cmd.Flags().BoolVar(&f.stdin, "password-stdin", false, "Read the password from stdin")
	cmd.Flags().BoolVar(&f.generate, "generate-password", false, "Generate a random password and print it")
}

var (
	bootstrapAdminEmail string
	bootstrapAdminPass  passwordFlags

	createUserEmail string
	createUserRole  string
	createUserPass  passwordFlags
)

var bootstrapAdminCmd = &cobra.Command{
	Use:   "bootstrap-admin",
	Short: "Create the first admin user (idempotent if an admin already exists).",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email := auth.NormalizeEmail(bootstrapAdminEmail)
		if email == "" {
			return errors.New("--email is required")
		}

		password, generated, err := resolvePassword(cmd, bootstrapAdminPass)
		if err != nil {
			return err
		}

		return withQueries(func(ctx context.Context, q *gen.Queries) error {
			adminCount, err := q.CountAuthAdmins(ctx)
			if err != nil {
				return err
			}
			if adminCount > 0 {
				cmd.Println("admin user already exists; nothing to do")
				return nil
			}

			if err := createUser(ctx, q, email, password, auth.RoleAdmin); err != nil {
				return err
			}
			cmd.Printf("created admin user: %s\n", email)
			if generated {
				cmd.Printf("generated password: %s\n", password)
			}
			return nil
		})
	},
}

var createUserCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user with the given role.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email := auth.NormalizeEmail(createUserEmail)
		if email == "" {
			return errors.New("--email is required")
		}
		role, err := parseAssignableRole(createUserRole)
		if err != nil {
			return err
		}

		password, generated, err := resolvePassword(cmd, createUserPass)
		if err != nil {
			return err
		}

		return withQueries(func(ctx context.Context, q *gen.Queries) error {
			if err := createUser(ctx, q, email, password, role); err != nil {
				return err
			}
			cmd.Printf("created %s user: %s\n", role, email)
			if generated {
				cmd.Printf("generated password: %s\n", password)
			}
			return nil
		})
	},
}

// parseAssignableRole accepts the roles an account can hold. Guest is the
// absence of an account, so it is rejected.
func parseAssignableRole(raw string) (auth.Role, error) {
	role, err := auth.ParseRole(raw)
	if err != nil {
		return 0, err
	}
	if role == auth.RoleGuest {
		return 0, fmt.Errorf("role %q cannot be assigned to an account", role)
	}
	return role, nil
}

func withQueries(fn func(ctx context.Context, q *gen.Queries) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), usersCommandTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, gen.New(pool))
}

func createUser(ctx context.Context, q *gen.Queries, email, password string, role auth.Role) error {
	if _, err := q.GetAuthUserByEmail(ctx, email); err == nil {
		return fmt.Errorf("user already exists: %s", email)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = q.CreateAuthUser(ctx, gen.CreateAuthUserParams{
		Email:        email,
		PasswordHash: hash,
		Role:         role.String(),
		IsActive:     true,
	})
	return err
}

func resolvePassword(cmd *cobra.Command, f passwordFlags) (string, bool, error) {
	if f.stdin && f.generate {
		return "", false, errors.New("--password-stdin and --generate-password are mutually exclusive")
	}
	if f.stdin && f.value != "" {
		return "", false, errors.New("--password-stdin and --password are mutually exclusive")
	}
	if f.generate && f.value != "" {
		return "", false, errors.New("--generate-password and --password are mutually exclusive")
	}

	if f.stdin {
		raw, err := ioReadAllStdin()
		if err != nil {
			return "", false, err
		}
		password := strings.TrimRight(raw, "\r\n")
		if password == "" {
			return "", false, errors.New("password is empty")
		}
		return password, false, nil
	}

	if f.generate {
		password, err := generatePassword(24)
		if err != nil {
			return "", false, err
		}
		return password, true, nil
	}

	if f.value != "" {
		return f.value, false, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", false, errors.New("no password provided (use --password, --password-stdin, or --generate-password)")
	}

	cmd.Print("Password: ")
	pass1, err := term.ReadPassword(int(os.Stdin.Fd()))
	cmd.Println()
	if err != nil {
		return "", false, err
	}
	if len(pass1) == 0 {
		return "", false, errors.New("password is empty")
	}

	cmd.Print("Confirm password: ")
	pass2, err := term.ReadPassword(int(os.Stdin.Fd()))
	cmd.Println()
	if err != nil {
		return "", false, err
	}

	if string(pass1) != string(pass2) {
		return "", false, errors.New("passwords do not match")
	}

	return string(pass1), false, nil
}

func ioReadAllStdin() (string, error) {
	in, err := os.Stdin.Stat()
	if err != nil {
		return "", err
	}
	if in.Mode()&os.ModeCharDevice != 0 {
		return "", errors.New("stdin is a terminal; use --password or omit to prompt")
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", nil
	}
	return scanner.Text(), nil
}

func generatePassword(length int) (string, error) {
	if length < auth.MinPasswordLength {
		return "", errors.New("password length too short")
	}
	const alphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	const alphabetLen = byte(len(alphabet))
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = alphabet[b[i]%alphabetLen]
	}
	return string(b), nil
}

func init() {
	usersCmd.AddCommand(bootstrapAdminCmd, createUserCmd)

	bootstrapAdminCmd.Flags().StringVar(&bootstrapAdminEmail, "email", "", "Email address for the admin user")
	bootstrapAdminPass.register(bootstrapAdminCmd, "admin user")
	_ = bootstrapAdminCmd.MarkFlagRequired("email")

	createUserCmd.Flags().StringVar(&createUserEmail, "email", "", "Email address for the user")
	createUserCmd.Flags().StringVar(&createUserRole, "role", auth.RoleUser.String(), "Role for the user (user or admin)")
	createUserPass.register(createUserCmd, "user")
	_ = createUserCmd.MarkFlagRequired("email")
}
