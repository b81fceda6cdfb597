package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mnvvr/web3-scrum-poker/db"
	"github.com/mnvvr/web3-scrum-poker/handlers"
)

const releaseVersion = "0.1.0"

type config struct {
	bind            string
	port            int
	baseURL         string
	cleanupInterval time.Duration
	verbose         bool
}

func (c *config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	return nil
}

func newCmd(cfg *config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("SCRUMPOKER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "scrum-poker",
		Short:         "A planning poker server: rooms, stories, votes and reveal statistics.",
		Args:          cobra.ExactArgs(0),
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: SCRUMPOKER_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: SCRUMPOKER_PORT)")
	fs.StringVar(&cfg.baseURL, "base-url", "http://localhost:8080", "external URL used in join links and QR codes (env: SCRUMPOKER_BASE_URL)")
	fs.DurationVar(&cfg.cleanupInterval, "cleanup-interval", 30*time.Minute, "time between sweeps of empty rooms (env: SCRUMPOKER_CLEANUP_INTERVAL)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: SCRUMPOKER_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("scrum-poker v{{.Version}}\n")

	return cmd
}

// newRouter wires every API route onto a gin engine
func newRouter(store *db.Store, baseURL string) *gin.Engine {
	router := gin.Default()

	roomHandler := handlers.NewRoomHandler(store, baseURL)
	sessionHandler := handlers.NewSessionHandler(store)

	api := router.Group("/api")
	{
		api.GET("/cards", roomHandler.GetCardTypes)

		api.POST("/rooms", roomHandler.CreateRoom)

		rooms := api.Group("/rooms/:code")
		{
			rooms.GET("", roomHandler.GetRoom)
			rooms.POST("/join", roomHandler.JoinRoom)
			rooms.GET("/leave", roomHandler.LeaveRoom)
			rooms.POST("/stories", roomHandler.AddStory)
			rooms.PUT("/stories/:index", roomHandler.UpdateStory)
			rooms.POST("/stories/:index/comments", roomHandler.AddComment)
			rooms.POST("/vote", roomHandler.CastVote)
			rooms.GET("/reveal", roomHandler.RevealVotes)
			rooms.GET("/reset", roomHandler.ResetVotes)
			rooms.GET("/next", roomHandler.NextStory)
			rooms.GET("/end", roomHandler.EndSession)
			rooms.GET("/stats", roomHandler.GetStats)
			rooms.GET("/summary", roomHandler.GetSummary)
			rooms.GET("/qr", roomHandler.GetJoinQR)
		}

		api.POST("/session", sessionHandler.SaveSession)
		api.GET("/session/:token", sessionHandler.GetSession)
		api.DELETE("/session/:token", sessionHandler.DeleteSession)
	}

	return router
}

func run(cfg *config) error {
	if cfg.verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	store := db.NewStore()

	// Sweep rooms abandoned by all participants
	go func() {
		ticker := time.NewTicker(cfg.cleanupInterval)
		defer ticker.Stop()

		for range ticker.C {
			if count := store.CleanupEmptyRooms(); count > 0 {
				slog.Info("cleaned up empty rooms", "count", count)
			}
		}
	}()

	server := http.Server{
		Handler: newRouter(store, cfg.baseURL),
		Addr:    cfg.bind + ":" + strconv.Itoa(cfg.port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		server.Close()
	}()

	slog.Info("listening", "addr", server.Addr)
	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		slog.Info("server closed")
		return nil
	}
	return err
}

func main() {
	cfg := &config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}
