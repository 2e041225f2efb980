package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"content-rebirth/cmd/api/dto"
	"content-rebirth/cmd/api/services"
	"content-rebirth/generator"
	"content-rebirth/models"
)

// GenerateContentHandler godoc
// @Summary      Generate content
// @Description  Turn a meeting transcript into an article, blog post, social post or newsletter stored as DRAFT
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        body  body      dto.GenerateContentRequest  true  "Generation request"
// @Success      200   {object}  dto.Response{data=models.Content}
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      502   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /content/generate [post]
func GenerateContentHandler(svc *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.GenerateContentRequest
		if !bindJSON(c, &req) {
			return
		}
		content, err := svc.Generate(c.Request.Context(), generator.GenerationRequest{
			Transcript:  req.Transcript,
			ContentType: models.ContentType(req.Type),
			Tone:        generator.Tone(req.Tone),
			Length:      generator.Length(req.Length),
			Title:       req.Title,
			Category:    req.Category,
			Tags:        req.Tags,
		}, req.MeetingID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(content, "Content generated successfully!"))
	}
}

// ListContentHandler godoc
// @Summary      List content
// @Description  List generated content, newest first
// @Tags         content
// @Param        page       query  int     false  "Page number (1-based)"
// @Param        page_size  query  int     false  "Page size (<=100)"
// @Param        type       query  string  false  "Content type"
// @Param        category   query  string  false  "Category (case-insensitive)"
// @Param        status     query  string  false  "Status"
// @Produce      json
// @Success      200  {object}  dto.Response{data=dto.PaginationContentDTO}
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /content [get]
func ListContentHandler(svc *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ListContentInput
		in.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		in.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
		in.Type = c.Query("type")
		in.Category = c.Query("category")
		in.Status = c.Query("status")

		page, err := svc.List(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(page, ""))
	}
}

// GetContentHandler godoc
// @Summary      Get content by id
// @Description  Get a single content by ObjectID; every read counts as a view
// @Tags         content
// @Param        id   path  string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  dto.Response{data=models.Content}
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /content/{id} [get]
func GetContentHandler(svc *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		content, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(content, ""))
	}
}

// PublishContentHandler godoc
// @Summary      Publish content
// @Description  Mark content PUBLISHED and return the platform page to open (medium, devto, hashnode, linkedin)
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "ObjectID"
// @Param        body  body      dto.PublishRequest  true  "Target platform"
// @Success      200   {object}  dto.Response{data=dto.PublishResultDTO}
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      404   {object}  dto.ErrorResponseDTO
// @Router       /content/{id}/publish [post]
func PublishContentHandler(svc *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.PublishRequest
		if !bindJSON(c, &req) {
			return
		}
		res, err := svc.Publish(c.Request.Context(), c.Param("id"), req.Platform)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(res, "Redirecting to "+res.Platform+"..."))
	}
}

// ContentOutlineHandler godoc
// @Summary      Content outline
// @Description  Ask the AI provider for a section outline of the content a transcript would produce
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        body  body      dto.OutlineRequest  true  "Outline request"
// @Success      200   {object}  dto.Response{data=dto.ListResponseDTO}
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      502   {object}  dto.ErrorResponseDTO
// @Router       /content/outline [post]
func ContentOutlineHandler(svc *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.OutlineRequest
		if !bindJSON(c, &req) {
			return
		}
		items, err := svc.Outline(c.Request.Context(), req.Transcript, req.Type)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(dto.ListResponseDTO{Items: items}, ""))
	}
}

// ContentInsightsHandler godoc
// @Summary      Transcript insights
// @Description  Ask the AI provider for the key insights and action points of a transcript
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        body  body      dto.InsightsRequest  true  "Insights request"
// @Success      200   {object}  dto.Response{data=dto.ListResponseDTO}
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      502   {object}  dto.ErrorResponseDTO
// @Router       /content/insights [post]
func ContentInsightsHandler(svc *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.InsightsRequest
		if !bindJSON(c, &req) {
			return
		}
		items, err := svc.Insights(c.Request.Context(), req.Transcript)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(dto.ListResponseDTO{Items: items}, ""))
	}
}
