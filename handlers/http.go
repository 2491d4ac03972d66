package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/samber/mo"

	"rmembot/clients"
	"rmembot/core"
	"rmembot/models"
	"rmembot/services"
	"rmembot/utils"
)

type ReactionsHTTPHandler struct {
	discordClient        clients.DiscordClient
	reactionUsersService services.ReactionUsersService
}

func NewReactionsHTTPHandler(
	discordClient clients.DiscordClient,
	reactionUsersService services.ReactionUsersService,
) *ReactionsHTTPHandler {
	return &ReactionsHTTPHandler{
		discordClient:        discordClient,
		reactionUsersService: reactionUsersService,
	}
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *ReactionsHTTPHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleGetReactionMembers answers the same query as the rmem command for one message
func (h *ReactionsHTTPHandler) HandleGetReactionMembers(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := core.NewID("rq")
	log.Printf("📋 [%s] Reaction members request for message %s in channel %s",
		requestID, vars["messageID"], vars["channelID"])

	channelID, err := models.ParseSnowflake(vars["channelID"])
	if err != nil {
		log.Printf("❌ [%s] Invalid channel ID %q", requestID, vars["channelID"])
		http.Error(w, "invalid channel ID", http.StatusBadRequest)
		return
	}
	messageID, err := models.ParseSnowflake(vars["messageID"])
	if err != nil {
		log.Printf("❌ [%s] Invalid message ID %q", requestID, vars["messageID"])
		http.Error(w, "invalid message ID", http.StatusBadRequest)
		return
	}

	query := r.URL.Query()
	guildID := mo.None[models.Snowflake]()
	if rawGuildID := query.Get("guild_id"); rawGuildID != "" {
		parsed, err := models.ParseSnowflake(rawGuildID)
		if err != nil {
			log.Printf("❌ [%s] Invalid guild ID %q", requestID, rawGuildID)
			http.Error(w, "invalid guild ID", http.StatusBadRequest)
			return
		}
		guildID = mo.Some(parsed)
	}

	ctx := r.Context()
	message, err := h.discordClient.GetMessage(ctx, channelID, messageID)
	if err != nil {
		switch {
		case core.IsNotFoundError(err):
			log.Printf("⚠️ [%s] Message %s not found", requestID, messageID)
			http.Error(w, "message not found", http.StatusNotFound)
		default:
			log.Printf("❌ [%s] Failed to get message %s: %v", requestID, messageID, err)
			http.Error(w, "failed to read message", http.StatusBadGateway)
		}
		return
	}
	if message.GuildID.IsAbsent() {
		message.GuildID = guildID
	}

	params := models.ParseDisplayMode(query.Get("mode")).QueryParameters()
	params.IncludeUsers = models.NewUserSet(utils.ParseUserMentions(strings.Join(query["include_user"], " "))...)
	params.ExcludeUsers = models.NewUserSet(utils.ParseUserMentions(strings.Join(query["exclude_user"], " "))...)
	params.ExcludeReactions = models.NewEmojiSet(utils.ParseReactions(strings.Join(query["exclude_reaction"], " "))...)

	response, err := h.reactionUsersService.ProcessReactionQuery(ctx, message, params)
	if err != nil {
		log.Printf("❌ [%s] Failed to process reaction query: %v", requestID, err)
		http.Error(w, "failed to process reaction query", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ [%s] Reaction members returned for message %s", requestID, messageID)
	h.writeJSONResponse(w, http.StatusOK, response)
}

func (h *ReactionsHTTPHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering reaction members API endpoints")

	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
	log.Printf("✅ GET /health endpoint registered")

	router.HandleFunc(
		"/api/channels/{channelID}/messages/{messageID}/reactions",
		h.HandleGetReactionMembers,
	).Methods("GET")
	log.Printf("✅ GET /api/channels/{channelID}/messages/{messageID}/reactions endpoint registered")
}

func (h *ReactionsHTTPHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
	}
}
