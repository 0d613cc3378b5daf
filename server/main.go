package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/puyokura/zethon/config"
	"github.com/puyokura/zethon/effects"
	"github.com/puyokura/zethon/logging"
	"go.uber.org/zap"
)

const serverLog = "logs/server.log"

type landingPage struct {
	Forum   string
	Welcome string
	Addr    string
	Kinds   []effects.Kind
}

var landing = template.Must(template.New("landing").Parse(`
<!DOCTYPE html>
<html>
<head>
    <title>{{.Forum}} Effect Collector</title>
    <style>
        body { font-family: sans-serif; text-align: center; padding-top: 50px; }
        code { background: #f4f4f4; padding: 5px; border-radius: 5px; }
        ul { list-style: none; padding: 0; }
    </style>
</head>
<body>
    <h1>{{.Forum}} Effect Collector</h1>
    <p>{{.Welcome}}</p>
    <p>Point the client at this address with <code>ZETHON_SINK=remote ZETHON_REMOTE_HOST={{.Addr}}</code></p>
    <p>Watch effects live on <code>ws://{{.Addr}}/watch</code></p>
    <ul>
{{- range .Kinds}}
        <li><code>{{.}}</code></li>
{{- end}}
    </ul>
</body>
</html>
`))

func newRouter(hub *Hub, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page := landingPage{
			Forum:   cfg.ForumName,
			Welcome: cfg.Collector.WelcomeMessage,
			Addr:    cfg.Addr(),
			Kinds:   sortedKinds(hub.Stats()),
		}
		if err := landing.Execute(w, page); err != nil {
			hub.logger.Error("Render landing page", zap.Error(err))
		}
	})

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, false, w, r)
	})

	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, true, w, r)
	})

	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*") // Allow CORS

		stats := struct {
			Watchers int                  `json:"watchers"`
			Effects  map[effects.Kind]int `json:"effects"`
		}{hub.Watchers(), hub.Stats()}
		if err := json.NewEncoder(w).Encode(stats); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	return mux
}

func main() {
	configFile := flag.String("config", "zethon.json", "Path to configuration file")
	flag.Parse()

	cfg := config.NewConfig(*configFile)
	if err := cfg.Load(); err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(serverLog, cfg.LogLevel, true)
	if err != nil {
		fmt.Printf("Failed to setup logging: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := NewHub(effects.NewLog(logger), logger, cfg.Collector.WelcomeMessage)
	go hub.Run(ctx)

	server := &http.Server{Addr: cfg.Addr(), Handler: newRouter(hub, cfg)}
	go func() {
		logger.Info("Collector started", zap.String("addr", cfg.Addr()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("ListenAndServe", zap.Error(err))
		}
	}()

	<-ctx.Done()
	fmt.Println("\nShutting down collector...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown", zap.Error(err))
	}
	logger.Sync()

	target, err := logging.Archive(serverLog, time.Now())
	if err != nil {
		fmt.Printf("Failed to archive log: %v\n", err)
		return
	}
	os.Remove(serverLog)
	fmt.Printf("Log archived to %s\n", target)
}
