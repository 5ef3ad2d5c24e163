package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"shapenav/internal/game"
	"shapenav/internal/nav"
	"shapenav/internal/shape"
	"shapenav/internal/transport/ws"
)

var (
	configPath string
	facesPath  string
)

func main() {
	// Run relative to the binary for deployed builds; "go run" builds into go-build temp dirs.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	root := &cobra.Command{
		Use:   "shapenav",
		Short: "Spinning-shape site navigation",
		Long: `shapenav - navigate content by turning a pyramid

Each side of the pyramid is a page. Click a side to bring it to the
front and open its content; close the content to send the pyramid back.

Controls (view):
  Mouse drag  - Spin, with momentum on release
  Click       - Open the face under the pointer
  Esc         - Close the open content
  D           - Toggle debug mode
  Arrows, Z/X - Nudge orientation (debug mode)`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Navigation tuning JSON (defaults when empty)")
	root.PersistentFlags().StringVar(&facesPath, "faces", "", "Face registry JSON (built-in faces when empty)")

	root.AddCommand(viewCmd(), serveCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadInputs() (nav.Config, *shape.Registry, error) {
	cfg := nav.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = nav.LoadConfig(configPath); err != nil {
			return nav.Config{}, nil, err
		}
	}

	faces := shape.DefaultRegistry()
	if facesPath != "" {
		var err error
		if faces, err = shape.LoadRegistry(facesPath); err != nil {
			return nav.Config{}, nil, err
		}
	}
	return cfg, faces, nil
}

func viewCmd() *cobra.Command {
	var (
		contentDir string
		fontDir    string
		prefsPath  string
		width      int
		height     int
		fps        int
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the desktop viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, faces, err := loadInputs()
			if err != nil {
				return err
			}
			g, err := game.New(game.Options{
				Config:      cfg,
				Faces:       faces,
				ContentRoot: contentDir,
				FontDir:     fontDir,
				PrefsPath:   prefsPath,
				Width:       width,
				Height:      height,
				FPS:         fps,
			})
			if err != nil {
				return err
			}
			return g.Run()
		},
	}

	cmd.Flags().StringVar(&contentDir, "content", "assets", "Directory that face content refs are relative to")
	cmd.Flags().StringVar(&fontDir, "fonts", "assets/fonts", "Directory with optional UI fonts")
	cmd.Flags().StringVar(&prefsPath, "prefs", game.DefaultPrefsFile, "Viewer settings file (empty to disable)")
	cmd.Flags().IntVar(&width, "width", 1280, "Window width")
	cmd.Flags().IntVar(&height, "height", 720, "Window height")
	cmd.Flags().IntVar(&fps, "fps", 60, "Target FPS")
	return cmd
}

func serveCmd() *cobra.Command {
	var (
		addr       string
		fps        int
		frameEvery int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve navigation sessions over websocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, faces, err := loadInputs()
			if err != nil {
				return err
			}
			srv, err := ws.NewServer(ws.Options{
				Config:     cfg,
				Faces:      faces,
				FPS:        fps,
				FrameEvery: frameEvery,
				Logger:     log.Default(),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				return fmt.Errorf("serve %s: %w", addr, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().IntVar(&fps, "fps", ws.DefaultFPS, "Ticks per second per session")
	cmd.Flags().IntVar(&frameEvery, "frame-every", ws.DefaultFrameEvery, "Send a frame message every N ticks")
	return cmd
}
