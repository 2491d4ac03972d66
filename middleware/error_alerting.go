package middleware

import (
	"context"
	"crypto/md5"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/slack-go/slack"
)

type SlackAlertConfig struct {
	WebhookURL  string
	Environment string
	AppName     string
	LogsURL     string
}

// InteractionHandler processes one Discord interaction
type InteractionHandler func(ctx context.Context, interaction *discordgo.Interaction) error

type ErrorAlertMiddleware struct {
	config        SlackAlertConfig
	httpClient    *http.Client
	alertedErrors map[string]time.Time // hash -> last alert time
	mutex         sync.Mutex
	alertCooldown time.Duration
	alertsSent    sync.WaitGroup
}

func NewErrorAlertMiddleware(config SlackAlertConfig) *ErrorAlertMiddleware {
	return &ErrorAlertMiddleware{
		config:        config,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		alertedErrors: make(map[string]time.Time),
		alertCooldown: 10 * time.Minute, // Don't alert same error more than once per 10min
	}
}

// HTTPMiddleware recovers panics in HTTP handlers and answers them with a 500
func (m *ErrorAlertMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if m.recoverAndAlert(fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path), recover()) {
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// WrapInteractionHandler alerts on errors and panics of an interaction handler
func (m *ErrorAlertMiddleware) WrapInteractionHandler(name string, handler InteractionHandler) InteractionHandler {
	return func(ctx context.Context, interaction *discordgo.Interaction) (err error) {
		alertContext := fmt.Sprintf("Discord %s (interaction: %s, guild: %s)", name, interaction.ID, interaction.GuildID)
		defer func() {
			if m.recoverAndAlert(alertContext, recover()) {
				err = fmt.Errorf("%s panicked", name)
			}
		}()

		if err := handler(ctx, interaction); err != nil {
			m.alertOnError(err, alertContext)
			return err
		}
		return nil
	}
}

// Background Task Wrapper
func (m *ErrorAlertMiddleware) WrapBackgroundTask(taskName string, task func() error) func() error {
	return func() (err error) {
		defer func() {
			if m.recoverAndAlert(fmt.Sprintf("Background task: %s", taskName), recover()) {
				err = fmt.Errorf("background task %s panicked", taskName)
			}
		}()

		if err := task(); err != nil {
			m.alertOnError(err, fmt.Sprintf("Background task: %s", taskName))
			return err
		}
		return nil
	}
}

// Wait blocks until every alert in flight has been delivered or dropped
func (m *ErrorAlertMiddleware) Wait() {
	m.alertsSent.Wait()
}

// Core error alerting logic
func (m *ErrorAlertMiddleware) alertOnError(err error, source string) {
	errorMsg := fmt.Sprintf("%s: %v", source, err)
	hash := fmt.Sprintf("%x", md5.Sum([]byte(errorMsg)))

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if lastAlert, exists := m.alertedErrors[hash]; exists && time.Since(lastAlert) < m.alertCooldown {
		return
	}

	m.sendAsync(errorMsg, source)
	m.alertedErrors[hash] = time.Now()
}

func (m *ErrorAlertMiddleware) recoverAndAlert(source string, recovered any) bool {
	if recovered == nil {
		return false
	}
	errorMsg := fmt.Sprintf("%s: PANIC - %v", source, recovered)
	log.Printf("❌ %s", errorMsg)
	m.sendAsync(errorMsg, source+" (PANIC)")
	return true
}

func (m *ErrorAlertMiddleware) sendAsync(errorMsg, source string) {
	m.alertsSent.Add(1)
	go func() {
		defer m.alertsSent.Done()
		m.sendSlackAlert(errorMsg, source)
	}()
}

func (m *ErrorAlertMiddleware) buildAlert(errorMsg, source string) *slack.WebhookMessage {
	envPrefix := ""
	if m.config.Environment == "dev" {
		envPrefix = "[dev] "
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(
			slack.PlainTextType, fmt.Sprintf("🚨 %s[%s] Error Alert", envPrefix, m.config.AppName), true, false,
		)),
		slack.NewSectionBlock(nil, []*slack.TextBlockObject{
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Service:* %s", m.config.AppName), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Environment:* %s", m.config.Environment), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Context:* %s", source), false, false),
		}, nil),
		slack.NewSectionBlock(slack.NewTextBlockObject(
			slack.MarkdownType, fmt.Sprintf("*Error:*\n```%s```", errorMsg), false, false,
		), nil, nil),
	}
	if m.config.LogsURL != "" {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject(
			slack.MarkdownType, fmt.Sprintf("🔗 <%s|View Logs>", m.config.LogsURL), false, false,
		), nil, nil))
	}

	return &slack.WebhookMessage{
		Text:   errorMsg,
		Blocks: &slack.Blocks{BlockSet: blocks},
	}
}

func (m *ErrorAlertMiddleware) sendSlackAlert(errorMsg, source string) {
	if m.config.WebhookURL == "" {
		return // Slack alerts disabled
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := slack.PostWebhookCustomHTTPContext(ctx, m.config.WebhookURL, m.httpClient, m.buildAlert(errorMsg, source))
	if err != nil {
		log.Printf("❌ Failed to send Slack alert: %v", err)
	}
}
