package setup

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"equeue-slip-bot/internal/config"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

const tokenKey = "TELEGRAM_BOT_TOKEN"

var ErrNoToken = errors.New("no bot token entered")

// EnsureToken makes envFile carry a bot token, asking on in when the token is
// missing or still the placeholder. It returns the token in use.
func EnsureToken(envFile string, in io.Reader, out io.Writer) (string, error) {
	env, err := godotenv.Read(envFile)
	if err != nil {
		color.New(color.FgYellow).Fprintf(out, "%s not found, a new one will be created\n", envFile)
		env = map[string]string{}
	}

	token := env[tokenKey]
	if token != "" && token != config.PlaceholderToken {
		color.New(color.FgGreen).Fprintln(out, "Bot token already configured")
		return token, nil
	}

	token, err = promptToken(bufio.NewReader(in), out)
	if err != nil {
		return "", err
	}
	env[tokenKey] = token
	if err := godotenv.Write(env, envFile); err != nil {
		return "", fmt.Errorf("write %s: %w", envFile, err)
	}
	color.New(color.FgGreen).Fprintf(out, "Token saved to %s\n", envFile)
	return token, nil
}

// PrepareDirectories creates the working directories and lists them on out.
func PrepareDirectories(cfg *config.Config, out io.Writer) error {
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	for _, dir := range []string{cfg.Paths.TempDir, cfg.Paths.AssetsDir, cfg.Paths.FontsDir, cfg.Paths.LogsDir} {
		color.New(color.FgGreen).Fprintf(out, "Directory ready: %s\n", dir)
	}
	color.New(color.FgCyan).Fprintf(out, "Put regular.ttf and bold.ttf into %s for Cyrillic text.\n", cfg.Paths.FontsDir)
	return nil
}

// promptToken asks until the answer looks like a BotFather token.
func promptToken(in *bufio.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "Get a token from @BotFather in Telegram.")
	for {
		fmt.Fprint(out, "Enter bot token: ")
		line, err := in.ReadString('\n')
		token := strings.TrimSpace(line)
		if config.TokenLooksValid(token) {
			return token, nil
		}
		if err != nil {
			return "", ErrNoToken
		}
		color.New(color.FgRed).Fprintln(out, "That does not look like a bot token, try again")
	}
}
