package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"content-rebirth/cmd/api/dto"
	"content-rebirth/cmd/api/services"
)

// CreateMeetingHandler godoc
// @Summary      Create meeting
// @Description  Store a finished meeting; topics, action items and duration are derived from the transcript
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateMeetingRequest  true  "Meeting"
// @Success      200   {object}  dto.Response{data=models.Meeting}
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /meetings [post]
func CreateMeetingHandler(svc *services.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateMeetingRequest
		if !bindJSON(c, &req) {
			return
		}
		m, err := svc.Create(c.Request.Context(), services.CreateMeetingInput{
			Title:        req.Title,
			Description:  req.Description,
			MeetingID:    req.MeetingID,
			Transcript:   req.Transcript,
			Duration:     req.Duration,
			Participants: req.Participants,
			Metadata:     req.Metadata,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(m, "Meeting created successfully"))
	}
}

// ListMeetingsHandler godoc
// @Summary      List meetings
// @Tags         meetings
// @Param        limit  query  int  false  "Maximum number of meetings (0 = all)"
// @Produce      json
// @Success      200  {object}  dto.Response{data=[]models.Meeting}
// @Router       /meetings [get]
func ListMeetingsHandler(svc *services.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "0"), 10, 64)
		meetings, err := svc.List(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(meetings, ""))
	}
}

// DashboardStatsHandler godoc
// @Summary      Dashboard statistics
// @Description  Totals of meetings, content, published content and views
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.Response{data=models.DashboardStats}
// @Router       /dashboard/stats [get]
func DashboardStatsHandler(svc *services.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Stats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(stats, ""))
	}
}
