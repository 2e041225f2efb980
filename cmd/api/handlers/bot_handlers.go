package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"content-rebirth/cmd/api/dto"
	"content-rebirth/cmd/api/services"
)

// CreateBotHandler godoc
// @Summary      Create bot
// @Description  Send a Meetstream transcription bot into a meeting
// @Tags         bots
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateBotRequest  true  "Bot request"
// @Success      200   {object}  dto.Response{data=dto.BotDTO}
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      502   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /bots [post]
func CreateBotHandler(svc *services.BotService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateBotRequest
		if !bindJSON(c, &req) {
			return
		}
		bot, err := svc.Create(c.Request.Context(), services.CreateBotInput{
			MeetingURL:        req.MeetingURL,
			Name:              req.Name,
			AudioRequired:     req.AudioRequired,
			TranscriptionType: req.TranscriptionType,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(dto.BotFromModel(*bot), "Bot created successfully"))
	}
}

// ListBotsHandler godoc
// @Summary      List bots
// @Tags         bots
// @Produce      json
// @Success      200  {object}  dto.Response{data=[]dto.BotDTO}
// @Router       /bots [get]
func ListBotsHandler(svc *services.BotService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bots, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]dto.BotDTO, 0, len(bots))
		for _, b := range bots {
			out = append(out, dto.BotFromModel(b))
		}
		c.JSON(http.StatusOK, dto.OK(out, ""))
	}
}

// GetBotHandler godoc
// @Summary      Get bot
// @Tags         bots
// @Param        id   path  string  true  "Meetstream bot id"
// @Produce      json
// @Success      200  {object}  dto.Response{data=dto.BotDTO}
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /bots/{id} [get]
func GetBotHandler(svc *services.BotService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bot, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(dto.BotFromModel(*bot), ""))
	}
}

// SyncBotHandler godoc
// @Summary      Sync bot
// @Description  Refresh the stored status and transcript id from Meetstream
// @Tags         bots
// @Param        id   path  string  true  "Meetstream bot id"
// @Produce      json
// @Success      200  {object}  dto.Response{data=dto.BotDTO}
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      502  {object}  dto.ErrorResponseDTO
// @Router       /bots/{id}/sync [post]
func SyncBotHandler(svc *services.BotService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bot, err := svc.Sync(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(dto.BotFromModel(*bot), ""))
	}
}

// DeleteBotHandler godoc
// @Summary      Remove bot
// @Description  Remove the bot from Meetstream, then from the database
// @Tags         bots
// @Param        id   path  string  true  "Meetstream bot id"
// @Produce      json
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      502  {object}  dto.ErrorResponseDTO
// @Router       /bots/{id} [delete]
func DeleteBotHandler(svc *services.BotService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(nil, "Bot removed successfully"))
	}
}

// BotTranscriptHandler godoc
// @Summary      Bot transcript
// @Description  Fetch the transcript Meetstream recorded for a bot
// @Tags         bots
// @Param        id   path  string  true  "Meetstream bot id"
// @Produce      json
// @Success      200  {object}  dto.Response{data=dto.TranscriptDTO}
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      502  {object}  dto.ErrorResponseDTO
// @Router       /bots/{id}/transcript [get]
func BotTranscriptHandler(svc *services.BotService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		raw, err := svc.Transcript(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(dto.TranscriptDTO{BotID: id, Transcript: raw}, ""))
	}
}

// BotStatsHandler godoc
// @Summary      Bot statistics
// @Description  Count bots per status
// @Tags         bots
// @Produce      json
// @Success      200  {object}  dto.Response{data=[]models.BotStatusCount}
// @Router       /bots/stats [get]
func BotStatsHandler(svc *services.BotService) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := svc.Stats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(counts, ""))
	}
}
