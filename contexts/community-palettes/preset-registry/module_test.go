package presetregistry_test

import (
	"context"
	"testing"

	presetregistry "palette/contexts/community-palettes/preset-registry"
	presetmemory "palette/contexts/community-palettes/preset-registry/adapters/memory"
	presetentities "palette/contexts/community-palettes/preset-registry/domain/entities"
	presetports "palette/contexts/community-palettes/preset-registry/ports"
	httptransport "palette/contexts/community-palettes/preset-registry/transport/http"
	voteledger "palette/contexts/community-palettes/vote-ledger"
	votememory "palette/contexts/community-palettes/vote-ledger/adapters/memory"
	voteports "palette/contexts/community-palettes/vote-ledger/ports"
	banregistry "palette/contexts/moderation-safety/ban-registry"
	banhttp "palette/contexts/moderation-safety/ban-registry/transport/http"
	moderationpipeline "palette/contexts/moderation-safety/moderation-pipeline"
)

func banhttpRequest(userID string) banhttp.BanRequest {
	return banhttp.BanRequest{UserID: userID, Reason: "repeated prohibited content"}
}

func banhttpUnban(userID string) banhttp.UnbanRequest {
	return banhttp.UnbanRequest{UserID: userID}
}

type moderationGateway struct {
	module moderationpipeline.Module
}

func (g moderationGateway) Evaluate(ctx context.Context, name string, description string) presetports.ModerationVerdict {
	result := g.module.Pipeline.Evaluate(ctx, name, description)
	return presetports.ModerationVerdict{
		Passed:       result.Passed,
		Method:       string(result.Method),
		FlaggedField: result.FlaggedField,
		Reason:       result.Reason,
		Scores:       result.Scores,
	}
}

type voteCasterGateway struct {
	module voteledger.Module
}

func (g voteCasterGateway) CastVote(ctx context.Context, presetID string, voterID string) (presetports.VoteOutcome, error) {
	result, err := g.module.Votes.Cast(ctx, presetID, voterID)
	if err != nil {
		return presetports.VoteOutcome{}, err
	}
	return presetports.VoteOutcome{AlreadyVoted: result.AlreadyVoted, NewCount: result.NewCount}, nil
}

type noopNotifier struct{}

func (noopNotifier) NotifyFlagged(context.Context, presetports.FlagAlert) {}

// mirrorPresets keeps the vote ledger's preset projection in step with preset
// writes, standing in for the presets table the postgres adapters share. The
// ledger stays authoritative for the count of rows it already knows about.
func mirrorPresets(presets *presetmemory.Store, votes *votememory.Store) {
	presets.MirrorWrites(func(preset presetentities.Preset) {
		count := preset.VoteCount
		if projection, err := votes.GetPresetProjection(context.Background(), preset.PresetID); err == nil {
			count = projection.VoteCount
		}
		votes.SetPreset(voteports.PresetProjection{
			PresetID:  preset.PresetID,
			AuthorID:  preset.AuthorID,
			Status:    string(preset.Status),
			VoteCount: count,
		})
	})
}

// buildModules wires the four contexts together the way the composition root
// does, all on in-memory stores.
func buildModules(t *testing.T) (presetregistry.Module, voteledger.Module, banregistry.Module) {
	t.Helper()
	moderation := moderationpipeline.NewModule(moderationpipeline.Dependencies{})
	votes := voteledger.NewInMemoryModule(nil)
	presets := presetregistry.NewInMemoryModule(nil, presetregistry.Dependencies{
		Moderation: moderationGateway{module: moderation},
		Votes:      voteCasterGateway{module: votes},
		Notifier:   noopNotifier{},
	}, nil)
	mirrorPresets(presets.Store, votes.Store)
	bans := banregistry.NewInMemoryModule(presets.Cascade, nil)
	return presets, votes, bans
}

func submitRequest(name string) httptransport.SubmitPresetRequest {
	return httptransport.SubmitPresetRequest{
		Name:        name,
		Description: "Layered blues for a quiet coastal look.",
		Category:    "cool",
		Dyes:        []int{4, 19, 72},
	}
}

func TestSubmitVoteAndBanFlow(t *testing.T) {
	presets, votes, bans := buildModules(t)
	ctx := context.Background()

	submitted, err := presets.Handler.SubmitHandler(ctx, "user-1", "Aster", submitRequest("Ocean Calm"))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	presetID := submitted.Data.Preset.PresetID
	if submitted.Data.Preset.Status != "approved" {
		t.Fatalf("clean submission should be approved, got %s", submitted.Data.Preset.Status)
	}
	if submitted.Data.Preset.VoteCount != 1 {
		t.Fatalf("author self-vote should land on creation, got count %d", submitted.Data.Preset.VoteCount)
	}

	voted, err := votes.Handler.CastHandler(ctx, presetID, "user-2")
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if voted.Data.AlreadyVoted {
		t.Fatalf("first vote by user-2 should be fresh")
	}
	if voted.Data.VoteCount != 2 {
		t.Fatalf("expected count 2 after the second voter, got %d", voted.Data.VoteCount)
	}

	if _, err := bans.Handler.BanHandler(ctx, "mod-1", banhttpRequest("user-1")); err != nil {
		t.Fatalf("ban failed: %v", err)
	}
	if _, err := presets.Handler.GetHandler(ctx, presetID, "user-3", false); err == nil {
		t.Fatalf("banned author's preset should be invisible to strangers")
	}
	if _, err := presets.Handler.GetHandler(ctx, presetID, "user-1", false); err != nil {
		t.Fatalf("author should still see their hidden preset: %v", err)
	}
	listed, err := presets.Handler.ByAuthorHandler(ctx, "user-1", "", false, 10, 0)
	if err != nil {
		t.Fatalf("by-author failed: %v", err)
	}
	if len(listed.Data.Items) != 0 {
		t.Fatalf("hidden presets leaked through the anonymous by-author listing: %+v", listed.Data.Items)
	}
	if _, err := votes.Handler.CastHandler(ctx, presetID, "user-4"); err == nil {
		t.Fatalf("hidden preset should not accept votes")
	}

	if _, err := bans.Handler.UnbanHandler(ctx, "mod-1", banhttpUnban("user-1")); err != nil {
		t.Fatalf("unban failed: %v", err)
	}
	restored, err := presets.Handler.GetHandler(ctx, presetID, "user-3", false)
	if err != nil {
		t.Fatalf("restored preset should be public again: %v", err)
	}
	if restored.Data.Status != "approved" {
		t.Fatalf("expected approved after unban, got %s", restored.Data.Status)
	}
}

func TestSubmitLocalFilterHoldsForReview(t *testing.T) {
	presets, _, _ := buildModules(t)

	req := submitRequest("Ocean Calm")
	req.Description = "Best gold seller colors for your estate."
	result, err := presets.Handler.SubmitHandler(context.Background(), "user-1", "Aster", req)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !result.Data.Flagged || result.Data.Preset.Status != "pending" {
		t.Fatalf("expected flagged pending submission, got %+v", result.Data)
	}
}
