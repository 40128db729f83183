package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"jacha_aru_api_go/db"
	"jacha_aru_api_go/services"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Create-user flags
	nombres   string
	apellidos string
	mail      string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a usuario, prompting for anything not given as a flag",
	Long: `Create a usuario from the terminal. The password is always read from the
prompt without echo, or from stdin when it is not a terminal.

Examples:
  jacha-admin create-user --mail ana@example.com --nombres Ana --apellidos Quispe
  printf 'secreto1\n' | jacha-admin create-user --mail ana@example.com --nombres Ana --apellidos Quispe`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		var err error
		if nombres, err = promptIfEmpty(in, out, "Nombres", nombres); err != nil {
			return err
		}
		if apellidos, err = promptIfEmpty(in, out, "Apellidos", apellidos); err != nil {
			return err
		}
		if mail, err = promptIfEmpty(in, out, "Mail", mail); err != nil {
			return err
		}
		pass, err := readPassword(in, out)
		if err != nil {
			return err
		}

		return createUsuario(out, services.RegisterInput{
			Nombres:   nombres,
			Apellidos: apellidos,
			Mail:      mail,
			Pass:      pass,
		})
	},
}

func init() {
	createUserCmd.Flags().StringVar(&nombres, "nombres", "", "Given names")
	createUserCmd.Flags().StringVar(&apellidos, "apellidos", "", "Family names")
	createUserCmd.Flags().StringVar(&mail, "mail", "", "Login mail")
	rootCmd.AddCommand(createUserCmd)
}

func createUsuario(out io.Writer, input services.RegisterInput) error {
	if input.Nombres == "" || input.Apellidos == "" || input.Mail == "" {
		return fmt.Errorf("nombres, apellidos and mail are required")
	}
	if err := services.ValidatePassword(input.Pass); err != nil {
		return err
	}

	result, err := services.Register(db.DB, services.NewJWTService(cfg.JWTSecret, cfg.JWTTTL), input)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created usuario %d (%s)\n", result.User.ID, result.User.Mail)
	return nil
}

func promptIfEmpty(in *bufio.Reader, out io.Writer, label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprintf(out, "%s: ", label)
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readPassword(in *bufio.Reader, out io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := in.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(out, "Password: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}
