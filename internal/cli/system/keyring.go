package system

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/dailycheck/internal/cli"
	"github.com/julianstephens/dailycheck/internal/constants"
	"github.com/julianstephens/dailycheck/internal/keyring"
	"github.com/julianstephens/dailycheck/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	Status KeyringStatusCmd `cmd:"" help:"Show the keyring entry and which connection source wins."`
}

type KeyringSetCmd struct {
	ConnectionString string `arg:"" optional:"" help:"PostgreSQL connection string (URL or key=value DSN)."`
	FromEnv          bool   `help:"Copy the connection string from DAILYCHECK_DB_CONNECTION." name:"from-env"`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	connStr := strings.TrimSpace(cmd.ConnectionString)
	if cmd.FromEnv {
		if connStr != "" {
			return errors.New("pass a connection string or --from-env, not both")
		}
		connStr = strings.TrimSpace(os.Getenv(constants.EnvConnection))
		if connStr == "" {
			return fmt.Errorf("%s is not set", constants.EnvConnection)
		}
	}
	if connStr == "" {
		return keyring.ErrEmpty
	}
	if !looksLikePostgres(connStr) {
		return errors.New("connection string must be a PostgreSQL URL (postgres://...) or DSN (host=...)")
	}

	if _, err := postgres.ValidateConnString(connStr); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// The keyring is encrypted, so embedded credentials are allowed here
		fmt.Println("⚠️  Warning: Connection string contains embedded credentials.")
		fmt.Println("   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(connStr); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Printf("✓ Stored %s\n", maskPassword(connStr))
	fmt.Println("  dailycheck will use it when neither --config nor " + constants.EnvConnection + " is set")
	return nil
}

type KeyringGetCmd struct {
	Reveal bool `help:"Print the password instead of masking it."`
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring. Use 'dailycheck keyring set' to store one")
	} else if err != nil {
		return err
	}

	if cmd.Reveal {
		fmt.Println(connStr)
		return nil
	}
	fmt.Println(maskPassword(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}

	fmt.Println("✓ Connection string deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	st := keyring.CurrentStatus()
	if !st.Available {
		fmt.Println("❌ OS keyring is not available on this system")
		return st.Err
	}

	fmt.Println("✓ OS keyring is available")
	if st.Stored {
		fmt.Println("✓ Connection string is stored in keyring")
	} else {
		fmt.Println("ℹ No connection string stored in keyring")
	}

	if os.Getenv(constants.EnvConnection) != "" {
		fmt.Printf("ℹ %s is set and takes precedence over the keyring\n", constants.EnvConnection)
	}
	return nil
}

func looksLikePostgres(connStr string) bool {
	return postgres.IsConnString(connStr) || strings.Contains(connStr, "host=")
}

// maskPassword masks passwords in connection strings for display
func maskPassword(connStr string) string {
	if postgres.IsConnString(connStr) {
		if idx := strings.Index(connStr, "://"); idx != -1 {
			remaining := connStr[idx+3:]
			// the last @ separates user info from host
			if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
				userInfo := remaining[:atIdx]
				if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
					return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
				}
			}
		}
		return connStr
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		masked := make([]string, 0, len(parts))
		for _, part := range parts {
			if strings.HasPrefix(part, "password=") {
				masked = append(masked, "password=****")
			} else {
				masked = append(masked, part)
			}
		}
		return strings.Join(masked, " ")
	}

	return connStr
}
