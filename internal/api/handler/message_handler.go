package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pingado/messaging-system/internal/core/ports"
)

// MessageHandler handles HTTP requests for direct messages.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// List returns a page of messages.
//
// @Summary      List messages
// @Tags         messages
// @Produce      json
// @Param        limit   query     int  false  "Page size (default 10)"
// @Param        offset  query     int  false  "Offset (default 0)"
// @Success      200     {array}   messageResponse
// @Router       /messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	messages, err := h.service.FindAll(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}

	out := make([]messageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, toMessageResponse(&messages[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns a single message by id.
//
// @Summary      Get a message
// @Tags         messages
// @Produce      json
// @Param        id   path      int  true  "Message id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /messages/{id} [get]
func (h *MessageHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	message, err := h.service.GetMessage(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMessageResponse(message))
}

// Create sends a message from the authenticated user. An optional
// Idempotency-Key header makes the send replay-safe.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Replay-safe send key"
// @Param        body             body      createMessageRequest  true   "Message"
// @Success      201              {object}  messageDetailResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /messages [post]
func (h *MessageHandler) Create(c echo.Context) error {
	var req createMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payload, err := ctxTokenPayload(c)
	if err != nil {
		return err
	}

	detail, err := h.service.CreateMessage(c.Request().Context(), ports.CreateMessageInput{
		Text:           req.Text,
		ToID:           req.ToID,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	}, payload)
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if detail.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, toMessageDetailResponse(detail))
}

// Update edits the text and/or read flag of a message the caller sent.
//
// @Summary      Edit a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Message id"
// @Param        body  body      updateMessageRequest  true  "Fields to update"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /messages/{id} [patch]
func (h *MessageHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payload, err := ctxTokenPayload(c)
	if err != nil {
		return err
	}

	message, err := h.service.UpdateMessage(c.Request().Context(), id, ports.UpdateMessageInput{
		Text: req.Text,
		Read: req.Read,
	}, payload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMessageResponse(message))
}

// Delete removes a message the caller sent.
//
// @Summary      Delete a message
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Message id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /messages/{id} [delete]
func (h *MessageHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	payload, err := ctxTokenPayload(c)
	if err != nil {
		return err
	}

	message, err := h.service.DeleteMessage(c.Request().Context(), id, payload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMessageResponse(message))
}
