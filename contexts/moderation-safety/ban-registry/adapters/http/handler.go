package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"palette/contexts/moderation-safety/ban-registry/application"
	"palette/contexts/moderation-safety/ban-registry/domain/entities"
	httptransport "palette/contexts/moderation-safety/ban-registry/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) BanHandler(ctx context.Context, moderatorID string, req httptransport.BanRequest) (httptransport.BanResponse, error) {
	ban, err := h.Service.Ban(ctx, application.BanCommand{
		UserID:      req.UserID,
		IPAddress:   req.IPAddress,
		ModeratorID: moderatorID,
		Reason:      req.Reason,
	})
	if err != nil {
		return httptransport.BanResponse{}, err
	}
	return mapBanResponse(ban), nil
}

func (h Handler) UnbanHandler(ctx context.Context, moderatorID string, req httptransport.UnbanRequest) (httptransport.BanResponse, error) {
	ban, err := h.Service.Unban(ctx, application.UnbanCommand{
		UserID:      req.UserID,
		IPAddress:   req.IPAddress,
		ModeratorID: moderatorID,
	})
	if err != nil {
		return httptransport.BanResponse{}, err
	}
	return mapBanResponse(ban), nil
}

func (h Handler) ListHandler(ctx context.Context, activeOnly bool) (httptransport.BanListResponse, error) {
	bans, err := h.Service.List(ctx, activeOnly)
	if err != nil {
		return httptransport.BanListResponse{}, err
	}
	resp := httptransport.BanListResponse{
		Status:    "success",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	resp.Data.Items = make([]httptransport.BanView, 0, len(bans))
	for _, ban := range bans {
		resp.Data.Items = append(resp.Data.Items, mapBanView(ban))
	}
	return resp, nil
}

func mapBanResponse(ban entities.Ban) httptransport.BanResponse {
	return httptransport.BanResponse{
		Status:    "success",
		Data:      mapBanView(ban),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func mapBanView(ban entities.Ban) httptransport.BanView {
	view := httptransport.BanView{
		BanID:            ban.BanID,
		UserID:           ban.UserID,
		IPAddress:        ban.IPAddress,
		ModeratorID:      ban.ModeratorID,
		Reason:           ban.Reason,
		Active:           ban.Active(),
		BannedAt:         ban.BannedAt.UTC().Format(time.RFC3339),
		UnbanModeratorID: ban.UnbanModeratorID,
	}
	if ban.UnbannedAt != nil {
		view.UnbannedAt = ban.UnbannedAt.UTC().Format(time.RFC3339)
	}
	return view
}
