// Package telegram is the bot front end. Free text is routed through the
// parsers; slash commands trigger planning and reports.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"shedai/internal/clipper"
	"shedai/internal/config"
	"shedai/internal/metrics"
	"shedai/internal/parse"
	"shedai/internal/planner"
	"shedai/internal/schedule"
	"shedai/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API, the scheduler, and the clipper.
type Bot struct {
	api          *tgbotapi.BotAPI
	scheduler    *planner.Scheduler
	clip         *clipper.Clipper
	metricsStore *metrics.Store
	cfg          *config.Config

	patternRepo     *store.PatternRepository
	taskRepo        *store.TaskRepository
	appointmentRepo *store.AppointmentRepository
	planRepo        *store.PlanRepository
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(
	cfg *config.Config,
	scheduler *planner.Scheduler,
	clip *clipper.Clipper,
	metricsStore *metrics.Store,
	patternRepo *store.PatternRepository,
	taskRepo *store.TaskRepository,
	appointmentRepo *store.AppointmentRepository,
	planRepo *store.PlanRepository,
) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:             bot,
		scheduler:       scheduler,
		clip:            clip,
		metricsStore:    metricsStore,
		cfg:             cfg,
		patternRepo:     patternRepo,
		taskRepo:        taskRepo,
		appointmentRepo: appointmentRepo,
		planRepo:        planRepo,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		return
	}

	if b.cfg.TelegramAllowUserID != 0 && update.Message.From.ID != b.cfg.TelegramAllowUserID {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)",
			update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	// 0. Slash commands
	if strings.HasPrefix(text, "/") {
		b.handleCommand(msg, text)
		return
	}

	// 1. Never store text that looks like our own prompts echoed back
	if parse.LooksLikeSystemPrompt(text) {
		b.reply(msg.Chat.ID, "⛔ 이 내용은 저장할 수 없어요. 일정이나 할 일을 보내주세요.")
		return
	}

	// 2. URL → clip an appointment out of the page
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		b.handleClipRequest(msg)
		return
	}

	// 3. Explicit appointment command ("...일정 추가해줘")
	if parse.EndsWithAppointmentCommand(text) {
		b.handleAppointment(msg, text)
		return
	}

	// 4. Task sentence (has a 마감 deadline)
	if task := parse.ParseTaskSentence(text, time.Now()); task != nil {
		b.handleTask(msg, task)
		return
	}

	// 5. Everything else is treated as a lifestyle block
	b.handleLifestyle(msg, text)
}

func (b *Bot) handleCommand(msg *tgbotapi.Message, text string) {
	cmd, rest, _ := strings.Cut(text, " ")
	switch cmd {
	case "/start", "/help":
		b.reply(msg.Chat.ID, helpText)
	case "/plan":
		b.handlePlanRequest(msg, strings.TrimSpace(rest))
	case "/mix":
		b.handleMixRequest(msg)
	case "/usage":
		b.handleUsageRequest(msg)
	default:
		b.reply(msg.Chat.ID, "모르는 명령이에요. /help 를 보내보세요.")
	}
}

const helpText = `📅 *shedAI*

생활 패턴을 줄 단위로 보내면 주간 패턴으로 저장해요.
예: 평일 09:00~18:00 근무

"보고서 작성. 10월 30일까지 중요도 상" 처럼 마감이 있으면 할 일로 저장해요.
"내일 오후 3시 회의 일정 추가해줘" 는 일정으로 저장해요.
행사 페이지 URL을 보내면 일정을 뽑아서 저장해요.

/plan [요청] — 다음 주 시간표 생성
/mix — 최근 시간표의 활동 비율
/usage — 최근 LLM 사용량`

func (b *Bot) handleLifestyle(msg *tgbotapi.Message, text string) {
	records := parse.ParseLifestyleBlock(text)
	if len(records) == 0 {
		b.reply(msg.Chat.ID, "무슨 뜻인지 모르겠어요. /help 를 보내보세요.")
		return
	}

	ctx := context.Background()
	userID := fmt.Sprintf("%d", msg.From.ID)
	if err := b.patternRepo.ReplaceAll(ctx, userID, records, time.Now()); err != nil {
		log.Printf("Error saving lifestyle patterns: %v", err)
		b.reply(msg.Chat.ID, "❌ 생활 패턴 저장에 실패했어요.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✅ *생활 패턴 %d건 저장*\n\n", len(records)))
	for _, rec := range records {
		sb.WriteString(fmt.Sprintf("• %s %s~%s %s\n", formatDays(rec.Days), rec.Start, rec.End, rec.Title))
	}
	b.reply(msg.Chat.ID, sb.String())
}

func (b *Bot) handleTask(msg *tgbotapi.Message, task *parse.TaskRecord) {
	ctx := context.Background()
	userID := fmt.Sprintf("%d", msg.From.ID)
	if _, err := b.taskRepo.Save(ctx, userID, task); err != nil {
		log.Printf("Error saving task: %v", err)
		b.reply(msg.Chat.ID, "❌ 할 일 저장에 실패했어요.")
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf(
		"✅ *할 일 저장*\n\n%s\n마감 %s, 중요도 %s, 난이도 %s",
		task.Title, task.Deadline.Format("2006-01-02"), task.Importance, task.Difficulty))
}

func (b *Bot) handleAppointment(msg *tgbotapi.Message, text string) {
	startsAt, ok := parse.ResolveAppointmentDate(text, time.Now())
	if !ok {
		b.reply(msg.Chat.ID, "언제인지 모르겠어요. 날짜나 시간을 함께 보내주세요.")
		return
	}
	title := parse.ExtractAppointmentTitle(text)

	ctx := context.Background()
	userID := fmt.Sprintf("%d", msg.From.ID)
	if _, err := b.appointmentRepo.Save(ctx, userID, title, startsAt, time.Now()); err != nil {
		log.Printf("Error saving appointment: %v", err)
		b.reply(msg.Chat.ID, "❌ 일정 저장에 실패했어요.")
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf("✅ *일정 저장*\n\n%s\n%s",
		title, startsAt.Format("2006-01-02 15:04")))
}

func (b *Bot) handleClipRequest(msg *tgbotapi.Message) {
	sentMsg, err := b.api.Send(b.markdownMessage(msg.Chat.ID, "✂️ *페이지에서 일정을 찾는 중...*"))
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx := context.Background()
	clipped, err := b.clip.ClipURL(ctx, msg.Text, time.Now())
	var finalText string
	if err != nil {
		log.Printf("Error clipping appointment: %v", err)
		finalText = "❌ 페이지에서 일정을 찾지 못했어요."
	} else {
		userID := fmt.Sprintf("%d", msg.From.ID)
		if _, err := b.appointmentRepo.Save(ctx, userID, clipped.Title, clipped.StartsAt, time.Now()); err != nil {
			log.Printf("Error saving clipped appointment: %v", err)
			finalText = "❌ 일정 저장에 실패했어요."
		} else {
			finalText = fmt.Sprintf("✅ *일정 저장*\n\n%s\n%s",
				clipped.Title, clipped.StartsAt.Format("2006-01-02 15:04"))
		}
	}

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) handlePlanRequest(msg *tgbotapi.Message, request string) {
	sentMsg, err := b.api.Send(b.markdownMessage(msg.Chat.ID, "🗓 *시간표를 만드는 중...*"))
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx := context.Background()
	userID := fmt.Sprintf("%d", msg.From.ID)
	now := time.Now()

	lifestyle, err := b.patternRepo.ListByUserID(ctx, userID)
	if err != nil {
		log.Printf("Error loading lifestyle patterns: %v", err)
		b.editReply(msg.Chat.ID, sentMsg.MessageID, "❌ 생활 패턴을 불러오지 못했어요.")
		return
	}
	tasks, err := b.taskRepo.ListOpen(ctx, userID, now)
	if err != nil {
		log.Printf("Error loading tasks: %v", err)
		b.editReply(msg.Chat.ID, sentMsg.MessageID, "❌ 할 일을 불러오지 못했어요.")
		return
	}

	weekStart := planner.GetNextMonday(now)
	plan, meta, err := b.scheduler.GeneratePlan(ctx, planner.PlanRequest{
		WeekStart: weekStart,
		Lifestyle: lifestyle,
		Tasks:     tasks,
		Request:   request,
	})
	if recordErr := b.metricsStore.RecordMeta(meta); recordErr != nil {
		log.Printf("Warning: failed to record metrics: %v", recordErr)
	}
	if err != nil {
		log.Printf("Error generating plan: %v", err)
		b.editReply(msg.Chat.ID, sentMsg.MessageID, "❌ 시간표 생성에 실패했어요.")
		return
	}

	if planJSON, err := json.Marshal(plan); err == nil {
		if err := b.planRepo.Save(ctx, userID, weekStart, planJSON, now); err != nil {
			log.Printf("Warning: failed to save plan for user %s: %v", userID, err)
		}
	}

	b.editReply(msg.Chat.ID, sentMsg.MessageID, formatPlanMarkdown(plan))
}

func (b *Bot) handleMixRequest(msg *tgbotapi.Message) {
	ctx := context.Background()
	userID := fmt.Sprintf("%d", msg.From.ID)

	stored, err := b.planRepo.LatestByUserID(ctx, userID)
	if err != nil {
		log.Printf("Error loading latest plan: %v", err)
		b.reply(msg.Chat.ID, "❌ 시간표를 불러오지 못했어요.")
		return
	}
	if stored == nil {
		b.reply(msg.Chat.ID, "아직 시간표가 없어요. /plan 을 먼저 실행해주세요.")
		return
	}

	var plan planner.Plan
	if err := json.Unmarshal(stored.PlanData, &plan); err != nil {
		log.Printf("Error decoding stored plan: %v", err)
		b.reply(msg.Chat.ID, "❌ 저장된 시간표를 읽지 못했어요.")
		return
	}

	b.reply(msg.Chat.ID, formatMixMarkdown(plan.WeekStart, schedule.CalculateMix(plan.Days)))
}

func (b *Bot) handleUsageRequest(msg *tgbotapi.Message) {
	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		log.Printf("Error fetching metrics: %v", err)
		b.reply(msg.Chat.ID, "❌ 사용량을 불러오지 못했어요.")
		return
	}

	health := metrics.GetSysHealth(b.cfg.DatabasePath)

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d execs)\n",
			d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}
	sb.WriteString(fmt.Sprintf("\n• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Database: %s\n", health.DatabaseSize))

	b.reply(msg.Chat.ID, sb.String())
}

var weekdayNames = []string{"", "월", "화", "수", "목", "금", "토", "일"}

func formatDays(days []int) string {
	if len(days) == 7 {
		return "매일"
	}
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 1 && d <= 7 {
			names = append(names, weekdayNames[d])
		}
	}
	return strings.Join(names, ",")
}

func formatPlanMarkdown(plan *planner.Plan) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 *%s 주 시간표*\n\n", plan.WeekStart.Format("2006-01-02")))
	for _, day := range plan.Days {
		sb.WriteString(fmt.Sprintf("*%s요일*\n", weekdayNames[day.Day]))
		for _, act := range day.Activities {
			sb.WriteString(fmt.Sprintf("%s~%s %s _(%s)_\n", act.Start, act.End, act.Title, act.Category))
		}
		sb.WriteString("\n")
	}
	if plan.Notes != "" {
		sb.WriteString(fmt.Sprintf("_%s_\n", plan.Notes))
	}
	return sb.String()
}

func formatMixMarkdown(weekStart time.Time, mix schedule.Mix) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *%s 주 활동 비율*\n\n", weekStart.Format("2006-01-02")))
	if mix.TotalMinutes == 0 {
		sb.WriteString("_시간이 기록된 활동이 없어요_")
		return sb.String()
	}
	for _, cat := range mix.Order {
		sb.WriteString(fmt.Sprintf("• %s: %d%%\n", cat, mix.ByCategory[cat]))
	}
	sb.WriteString(fmt.Sprintf("\n총 %d분", mix.TotalMinutes))
	return sb.String()
}

func (b *Bot) markdownMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	return msg
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(b.markdownMessage(chatID, text)); err != nil {
		log.Printf("Failed to send reply: %v", err)
	}
}

func (b *Bot) editReply(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Failed to edit reply: %v", err)
	}
}
