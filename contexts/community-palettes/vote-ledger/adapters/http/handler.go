package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"palette/contexts/community-palettes/vote-ledger/application/commands"
	httptransport "palette/contexts/community-palettes/vote-ledger/transport/http"
)

type Handler struct {
	Votes  commands.VoteUseCase
	Logger *slog.Logger
}

func (h Handler) CastHandler(ctx context.Context, presetID string, voterID string) (httptransport.VoteResponse, error) {
	result, err := h.Votes.Cast(ctx, presetID, voterID)
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return mapVoteResponse(presetID, result), nil
}

func (h Handler) RetractHandler(ctx context.Context, presetID string, voterID string) (httptransport.VoteResponse, error) {
	result, err := h.Votes.Retract(ctx, presetID, voterID)
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return mapVoteResponse(presetID, result), nil
}

func mapVoteResponse(presetID string, result commands.VoteResult) httptransport.VoteResponse {
	resp := httptransport.VoteResponse{
		Status:    "success",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	resp.Data.PresetID = presetID
	resp.Data.AlreadyVoted = result.AlreadyVoted
	resp.Data.VoteCount = result.NewCount
	return resp
}
