package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"palette/contexts/community-palettes/preset-registry/application/commands"
	"palette/contexts/community-palettes/preset-registry/application/queries"
	"palette/contexts/community-palettes/preset-registry/domain/entities"
	"palette/contexts/community-palettes/preset-registry/ports"
	httptransport "palette/contexts/community-palettes/preset-registry/transport/http"
)

type Handler struct {
	Submit commands.SubmitPresetUseCase
	Edit   commands.EditPresetUseCase
	Review commands.ReviewPresetUseCase
	Revert commands.RevertPresetUseCase
	Curate commands.CuratePresetUseCase
	Lists  queries.ListPresetsUseCase
	Logger *slog.Logger
}

func (h Handler) SubmitHandler(
	ctx context.Context,
	userID string,
	userName string,
	req httptransport.SubmitPresetRequest,
) (httptransport.SubmitPresetResponse, error) {
	result, err := h.Submit.Execute(ctx, commands.SubmitPresetCommand{
		AuthorID:   strings.TrimSpace(userID),
		AuthorName: strings.TrimSpace(userName),
		Fields: commands.PresetFields{
			Name:        req.Name,
			Description: req.Description,
			Category:    req.Category,
			Dyes:        req.Dyes,
			Tags:        req.Tags,
		},
	})
	if err != nil {
		return httptransport.SubmitPresetResponse{}, err
	}
	return httptransport.SubmitPresetResponse{
		Status: "success",
		Data: httptransport.SubmitPresetData{
			Preset:       mapPresetView(result.Preset),
			Duplicate:    result.Duplicate,
			VoteAdded:    result.VoteAdded,
			AlreadyVoted: result.AlreadyVoted,
			Flagged:      result.Flagged,
			FlagReason:   result.FlagReason,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h Handler) EditHandler(
	ctx context.Context,
	presetID string,
	userID string,
	req httptransport.EditPresetRequest,
) (httptransport.PresetResponse, error) {
	result, err := h.Edit.Execute(ctx, commands.EditPresetCommand{
		PresetID: strings.TrimSpace(presetID),
		EditorID: strings.TrimSpace(userID),
		Fields: commands.PresetFields{
			Name:        req.Name,
			Description: req.Description,
			Category:    req.Category,
			Dyes:        req.Dyes,
			Tags:        req.Tags,
		},
	})
	if err != nil {
		return httptransport.PresetResponse{}, err
	}
	return mapPresetResponse(result.Preset), nil
}

func (h Handler) ReviewHandler(
	ctx context.Context,
	presetID string,
	moderatorID string,
	req httptransport.ReviewPresetRequest,
) (httptransport.PresetResponse, error) {
	preset, err := h.Review.Execute(ctx, commands.ReviewPresetCommand{
		PresetID:    strings.TrimSpace(presetID),
		ModeratorID: strings.TrimSpace(moderatorID),
		Action:      commands.ReviewAction(strings.ToLower(strings.TrimSpace(req.Action))),
	})
	if err != nil {
		return httptransport.PresetResponse{}, err
	}
	return mapPresetResponse(preset), nil
}

func (h Handler) RevertHandler(ctx context.Context, presetID string, moderatorID string) (httptransport.PresetResponse, error) {
	preset, err := h.Revert.Execute(ctx, presetID, moderatorID)
	if err != nil {
		return httptransport.PresetResponse{}, err
	}
	return mapPresetResponse(preset), nil
}

func (h Handler) CurateHandler(
	ctx context.Context,
	presetID string,
	moderatorID string,
	req httptransport.CuratePresetRequest,
) (httptransport.PresetResponse, error) {
	preset, err := h.Curate.Execute(ctx, presetID, moderatorID, req.Curated)
	if err != nil {
		return httptransport.PresetResponse{}, err
	}
	return mapPresetResponse(preset), nil
}

func (h Handler) GetHandler(
	ctx context.Context,
	presetID string,
	viewerID string,
	moderator bool,
) (httptransport.PresetResponse, error) {
	preset, err := h.Lists.Get(ctx, presetID, viewerID, moderator)
	if err != nil {
		return httptransport.PresetResponse{}, err
	}
	return mapPresetResponse(preset), nil
}

func (h Handler) ListHandler(ctx context.Context, filter ports.ListFilter) (httptransport.PresetListResponse, error) {
	items, err := h.Lists.List(ctx, filter)
	if err != nil {
		return httptransport.PresetListResponse{}, err
	}
	return mapPresetListResponse(items), nil
}

func (h Handler) FeaturedHandler(ctx context.Context, limit int) (httptransport.PresetListResponse, error) {
	items, err := h.Lists.Featured(ctx, limit)
	if err != nil {
		return httptransport.PresetListResponse{}, err
	}
	return mapPresetListResponse(items), nil
}

func (h Handler) PendingHandler(ctx context.Context, limit int, offset int) (httptransport.PresetListResponse, error) {
	items, err := h.Lists.Pending(ctx, limit, offset)
	if err != nil {
		return httptransport.PresetListResponse{}, err
	}
	return mapPresetListResponse(items), nil
}

func (h Handler) ByAuthorHandler(
	ctx context.Context,
	authorID string,
	viewerID string,
	moderator bool,
	limit int,
	offset int,
) (httptransport.PresetListResponse, error) {
	items, err := h.Lists.ByAuthor(ctx, authorID, viewerID, moderator, limit, offset)
	if err != nil {
		return httptransport.PresetListResponse{}, err
	}
	return mapPresetListResponse(items), nil
}

func mapPresetResponse(preset entities.Preset) httptransport.PresetResponse {
	return httptransport.PresetResponse{
		Status:    "success",
		Data:      mapPresetView(preset),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func mapPresetListResponse(items []entities.Preset) httptransport.PresetListResponse {
	resp := httptransport.PresetListResponse{
		Status:    "success",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	resp.Data.Items = make([]httptransport.PresetView, 0, len(items))
	for _, item := range items {
		resp.Data.Items = append(resp.Data.Items, mapPresetView(item))
	}
	return resp
}

func mapPresetView(preset entities.Preset) httptransport.PresetView {
	tags := preset.Tags
	if tags == nil {
		tags = []string{}
	}
	return httptransport.PresetView{
		PresetID:     preset.PresetID,
		Name:         preset.Name,
		Description:  preset.Description,
		Category:     preset.Category,
		Dyes:         preset.Dyes,
		Tags:         tags,
		AuthorID:     preset.AuthorID,
		AuthorName:   preset.AuthorName,
		VoteCount:    preset.VoteCount,
		Status:       string(preset.Status),
		Curated:      preset.Curated,
		DyeSignature: preset.DyeSignature,
		CreatedAt:    preset.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    preset.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
