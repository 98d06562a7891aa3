package api

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sicko7947/grocer"
	"github.com/sicko7947/grocer/service"
)

type nameRequest struct {
	Name string `json:"name"`
}

type joinRequest struct {
	InviteCode string `json:"inviteCode"`
}

type colourRequest struct {
	Colour string `json:"colour"`
}

func bindJSON(c fiber.Ctx, target interface{}) error {
	if err := c.Bind().JSON(target); err != nil {
		return grocer.NewValidationError("body", "invalid request body")
	}
	return nil
}

// handleListLists returns every list, optionally only owned or shared ones
func (h *Handler) handleListLists(c fiber.Ctx) error {
	filter := grocer.ListFilter{
		OwnedOnly:  c.Query("owned") == "true",
		SharedOnly: c.Query("shared") == "true",
		Limit:      fiber.Query[int](c, "limit", 0),
	}

	lists, err := h.svc.Lists(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(lists)
}

// handleCreateList creates an owned list
func (h *Handler) handleCreateList(c fiber.Ctx) error {
	var req nameRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	list, err := h.svc.CreateList(c.Context(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(list)
}

// handleJoinList accepts an invite code; redemption is not available
func (h *Handler) handleJoinList(c fiber.Ctx) error {
	var req joinRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	return h.svc.JoinList(c.Context(), req.InviteCode)
}

func (h *Handler) handleGetList(c fiber.Ctx) error {
	listID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	list, err := h.svc.GetList(c.Context(), listID)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *Handler) handleRenameList(c fiber.Ctx) error {
	listID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	var req nameRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	list, err := h.svc.RenameList(c.Context(), listID, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *Handler) handleDeleteList(c fiber.Ctx) error {
	listID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.DeleteList(c.Context(), listID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) handleInvite(c fiber.Ctx) error {
	listID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	code, err := h.svc.InviteCode(c.Context(), listID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"listId":     listID,
		"inviteCode": code,
	})
}

// handleListItems returns the items visible under the ?tag= filters
func (h *Handler) handleListItems(c fiber.Ctx) error {
	listID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	tagIDs, err := tagQuery(c)
	if err != nil {
		return err
	}

	items, err := h.svc.Items(c.Context(), listID, tagIDs)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *Handler) handleAddItem(c fiber.Ctx) error {
	listID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	var input service.ItemInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	item, err := h.svc.AddItem(c.Context(), listID, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *Handler) handleUpdateItem(c fiber.Ctx) error {
	listID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	itemID, err := intParam(c, "itemId")
	if err != nil {
		return err
	}
	var input service.ItemInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	item, err := h.svc.UpdateItem(c.Context(), listID, itemID, input)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func (h *Handler) handleDeleteItem(c fiber.Ctx) error {
	listID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	itemID, err := intParam(c, "itemId")
	if err != nil {
		return err
	}

	if err := h.svc.DeleteItem(c.Context(), listID, itemID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) handleListTags(c fiber.Ctx) error {
	listID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	tags, err := h.svc.Tags(c.Context(), listID)
	if err != nil {
		return err
	}
	return c.JSON(tags)
}

func (h *Handler) handleRecolourTag(c fiber.Ctx) error {
	listID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	tagID, err := intParam(c, "tagId")
	if err != nil {
		return err
	}
	var req colourRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	tag, err := h.svc.RecolourTag(c.Context(), listID, tagID, req.Colour)
	if err != nil {
		return err
	}
	return c.JSON(tag)
}

func (h *Handler) handleRemoveTag(c fiber.Ctx) error {
	listID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	tagID, err := intParam(c, "tagId")
	if err != nil {
		return err
	}

	if err := h.svc.RemoveTag(c.Context(), listID, tagID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
