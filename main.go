package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"local-notes/app"
	"local-notes/config"
	"local-notes/models"
	"local-notes/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	notes := services.NewNotesService(services.Options{
		DataDir: cfg.DataDir,
		Logger:  logger,
	})
	if err := notes.Open(); err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := notes.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	a := app.New(notes, logger)

	// Watch the change feed and reflect every mutation on screen.
	sub := a.Notes.Subscribe()
	defer sub.Cancel()
	go func() {
		for list := range sub.Notes() {
			fmt.Printf("-- %d note(s) --\n", len(list))
		}
	}()

	repl(a)
}

func repl(a *app.App) {
	var current *models.User

	fmt.Println("commands: login <email> | new | list | edit <id> <text> | rm <id> | clear | quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "login":
			if len(fields) != 2 {
				fmt.Println("usage: login <email>")
				continue
			}
			req := models.CreateUserRequest{Email: fields[1]}
			if err := a.Validator.Validate(req); err != nil {
				fmt.Println("error:", err)
				continue
			}
			user, err := a.Notes.GetOrCreateUser(req.Email)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			current = user
			fmt.Printf("logged in as %s (id %d)\n", user.Email, user.ID)

		case "new":
			if current == nil {
				fmt.Println("login first")
				continue
			}
			note, err := a.Notes.CreateNote(current)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Printf("created note %d\n", note.ID)

		case "list":
			list, err := a.Notes.GetAllNotes()
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			for _, n := range list {
				fmt.Printf("%4d  user=%d synced=%v  %s\n", n.ID, n.UserID, n.SyncedWithCloud, n.Text)
			}

		case "edit":
			if len(fields) < 3 {
				fmt.Println("usage: edit <id> <text>")
				continue
			}
			id, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				fmt.Println("bad id:", fields[1])
				continue
			}
			req := models.UpdateNoteRequest{ID: id, Text: strings.Join(fields[2:], " ")}
			if err := a.Validator.Validate(req); err != nil {
				fmt.Println("error:", err)
				continue
			}
			if _, err := a.Notes.UpdateNote(&models.Note{ID: req.ID}, req.Text); err != nil {
				fmt.Println("error:", err)
			}

		case "rm":
			if len(fields) != 2 {
				fmt.Println("usage: rm <id>")
				continue
			}
			id, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				fmt.Println("bad id:", fields[1])
				continue
			}
			if err := a.Notes.DeleteNote(id); err != nil {
				fmt.Println("error:", err)
			}

		case "clear":
			count, err := a.Notes.DeleteAllNotes()
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Printf("deleted %d note(s)\n", count)

		case "quit", "exit":
			return

		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

func setupLogger(cfg config.Config) *slog.Logger {
	var handler slog.Handler

	if cfg.Env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: getLogLevel(cfg.LogLevel),
		})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      getLogLevel(cfg.LogLevel),
			TimeFormat: time.Kitchen,
		})
	}

	return slog.New(handler)
}

func getLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
