package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/Mshel/urkusteps/internal/game"
	"github.com/Mshel/urkusteps/internal/journey"
	"github.com/Mshel/urkusteps/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

const locationEnvKey = "URKU_LOCATION"

type connectionLimiter struct {
	mu        sync.Mutex
	ipCounter map[string]int
	limit     int
}

func newConnectionLimiter(limit int) *connectionLimiter {
	return &connectionLimiter{ipCounter: make(map[string]int), limit: limit}
}

func getIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

// acquire takes a slot for ip, false when the ip is at its limit.
func (l *connectionLimiter) acquire(ip string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ipCounter[ip] >= l.limit {
		return l.ipCounter[ip], false
	}
	l.ipCounter[ip]++
	return l.ipCounter[ip], true
}

func (l *connectionLimiter) release(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ipCounter[ip]--
	if l.ipCounter[ip] <= 0 {
		delete(l.ipCounter, ip)
	}
	return l.ipCounter[ip]
}

func (l *connectionLimiter) middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s)

		count, ok := l.acquire(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", count+1, "current_limit", l.limit)
			errorMessage := fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.\r\n", count+1, l.limit)
			s.Write([]byte(errorMessage))
			s.Close()
			return
		}

		log.Info("Connection accepted", "ip", ip, "current_count", count, "limit", l.limit)
		next(s)
		log.Info("Connection closed and counter decremented", "ip", ip, "count_after", l.release(ip))
	}
}

func main() {
	settings, err := game.LoadSettings()
	if err != nil {
		log.Fatal("Failed to read settings", "error", err)
	}
	if level, err := log.ParseLevel(settings.LogLevel); err == nil {
		log.SetLevel(level)
	}

	level, err := game.LoadLevel(settings.LevelPath)
	if err != nil {
		log.Fatal("Failed to load level", "error", err)
	}

	// a failed store is still served, sessions show the assets failed screen
	assets := game.LoadEmbeddedAssets()

	journeys, err := game.NewJourneyService(settings.DBPath)
	if err != nil {
		log.Fatal("Failed to open journey store", "path", settings.DBPath, "error", err)
	}
	defer journeys.Close()

	limiter := newConnectionLimiter(settings.MaxConnectionsPerIP)
	handler := func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		return viewHandler(sshSession, ui.Services{
			Level:    level,
			Assets:   assets,
			Journeys: journeys,
			Rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		})
	}

	sshServer, serverCreateErr := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(settings.Host, settings.Port)),
		wish.WithHostKeyPath(settings.PrivateKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(handler),
			logging.Middleware(),
			activeterm.Middleware(),
			limiter.middleware,
		),
	)
	if serverCreateErr != nil {
		log.Fatal("Failed to create ssh server", "error", serverCreateErr)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "host", settings.Host, "port", settings.Port, "level", level.Name)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}

func viewHandler(sshSession ssh.Session, services ui.Services) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sshSession.Pty()
	deviceLocation := sessionLocation(sshSession.Environ())

	controllerModel := ui.NewControllerModel(sshSession.Context(), services, deviceLocation, pty.Window.Width, pty.Window.Height)
	return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
}

// sessionLocation reads the client's URKU_LOCATION, sent with `ssh -o SendEnv=URKU_LOCATION`.
func sessionLocation(environ []string) *journey.LatLng {
	for _, kv := range environ {
		value, found := strings.CutPrefix(kv, locationEnvKey+"=")
		if !found {
			continue
		}
		location, err := journey.ParseLatLng(value)
		if err != nil {
			log.Warn("Ignoring client location", "error", err)
			return nil
		}
		return &location
	}
	return nil
}
