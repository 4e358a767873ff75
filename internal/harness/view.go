package harness

import (
	"holdem-engine/internal/poker/handfsm"
	"holdem-engine/pkg/card"
)

// HandPlayerView is a viewer-specific projection of a HandPlayer: hole
// cards are present only for the viewer's own seat, or for any unfolded
// seat once the hand has reached showdown.
type HandPlayerView struct {
	handfsm.HandPlayer
	HoleCards []card.Card `json:"HoleCards,omitempty"`
}

// GameStateView is the per-viewer projection returned by GetState. It
// embeds GameState for every field that carries no private information,
// but overrides Deck (never sent to any client) and Players (hole-card
// filtered) — see spec.md §4.6's "never rely on broadcast filtering"
// guidance in §9.
type GameStateView struct {
	handfsm.GameState
	Players []HandPlayerView
}

func viewFor(state handfsm.GameState, viewerID string) GameStateView {
	showdown := state.Phase == handfsm.Showdown
	players := make([]HandPlayerView, len(state.Players))
	for i, p := range state.Players {
		visible := p.ID == viewerID || (showdown && !p.Folded)
		pv := HandPlayerView{HandPlayer: p}
		if visible {
			pv.HoleCards = p.HoleCards
		}
		pv.HandPlayer.HoleCards = nil
		players[i] = pv
	}

	view := GameStateView{GameState: state, Players: players}
	view.GameState.Players = nil
	view.GameState.Deck = nil
	return view
}
