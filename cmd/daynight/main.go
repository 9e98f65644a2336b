package main

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/teteukt/daynight/charmlog"
	"github.com/teteukt/daynight/internal/app"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "daynight",
		Short:        "Log schedules under Day, Dawn and Night",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	flags := app.BindFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		conf, err := flags.LoadConfig()
		if err != nil {
			return err
		}

		if err := os.MkdirAll(path.Dir(conf.LogPath), 0o744); err != nil {
			return err
		}
		f, err := os.OpenFile(conf.LogPath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o666)
		if err != nil {
			return err
		}
		defer f.Close() //nolint:errcheck
		logger := charmlog.NewLogger(charmlog.Options{
			Writer: f,
			Level:  conf.LogLevel,
		})
		logger.Info("loaded config", "config", conf)

		repo, closeRepo, err := app.OpenRepository(conf, logger)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			return err
		}
		defer closeRepo() //nolint:errcheck

		fmt.Println(colorize(colorYellow, logo))
		fmt.Printf("\nEnter \"/h\" for help\n\n")

		userinput := textinput.New()
		userinput.Focus()
		userinput.CharLimit = 280
		userinput.Placeholder = "/d 0730 Wake up"
		userinput.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))

		m := model{
			l:          logger,
			repo:       repo,
			now:        time.Now,
			timeFormat: conf.TimeFormat,
			cmdTimeout: 3 * time.Second,
			userinput:  userinput,
			vp:         viewport.New(0, 0),
		}

		p := tea.NewProgram(m)
		if _, err := p.Run(); err != nil {
			logger.Error(err.Error())
			return err
		}
		return nil
	}

	return cmd
}
