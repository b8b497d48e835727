package server

import (
	"encoding/binary"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"

	"github.com/google/uuid"

	"sim-engine/engine"
	"sim-engine/models"
)

// Handlers for the five diagnostic interfaces named in §6. Each mirrors
// sim-engine/main.go's handler shape: decode, validate, call the core,
// writeJSON the result. None of these touch the database directly; the
// audit store is wired in only where SimulateAtBat flags a trace event.
// simulateAtBatHandler additionally drives the websocket stream's live
// tick trace whenever a client is connected (server/stream.go).

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":  "healthy",
		"workers": s.config.Workers,
	}
	if s.audit != nil {
		ctx, cancel := contextWithTimeout(r)
		defer cancel()
		if _, err := s.audit.RecentEvents(ctx, 1); err != nil {
			health["status"] = "degraded"
			health["audit_store"] = "unreachable"
		}
	}
	writeJSON(w, health)
}

func (s *Server) calcBallLandingHandler(w http.ResponseWriter, r *http.Request) {
	var req ballLandingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if cached, ok := s.cache.getLanding(r.Context(), req); ok {
		writeJSON(w, cached)
		return
	}

	report := engine.CalcBallLanding(req.Direction, req.LaunchAngle, req.ExitVelocity)
	resp := ballLandingResponse{
		LandingPos:      vec2JSON{X: report.LandingPos.X, Y: report.LandingPos.Y},
		LandingDistance: report.LandingDistance,
		FlightTime:      report.FlightTime,
		MaxHeight:       report.MaxHeight,
		IsGroundBall:    report.IsGroundBall,
		BattedBallType:  report.BattedBallType.String(),
	}
	s.cache.setLanding(r.Context(), req, resp)
	writeJSON(w, resp)
}

func (s *Server) classifyBattedBallHandler(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if cached, ok := s.cache.getClassify(r.Context(), req); ok {
		writeJSON(w, cached)
		return
	}

	bbType := engine.ClassifyBattedBallType(req.LaunchAngle, req.ExitVelocity)
	resp := classifyResponse{BattedBallType: bbType.String()}
	s.cache.setClassify(r.Context(), req, resp)
	writeJSON(w, resp)
}

func (s *Server) resolveHitTypeHandler(w http.ResponseWriter, r *http.Request) {
	var req resolveHitTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	result := engine.ResolveHitTypeFromLanding(req.LandingDistance, req.BatterSpeed, req.FenceDistance)
	writeJSON(w, resolveHitTypeResponse{Result: result.String()})
}

func (s *Server) evaluateFieldersHandler(w http.ResponseWriter, r *http.Request) {
	var req evaluateFieldersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	landing := engine.LandingReport{
		LandingPos:      models.Vec2{X: req.Landing.LandingPos.X, Y: req.Landing.LandingPos.Y},
		LandingDistance: req.Landing.LandingDistance,
		FlightTime:      req.Landing.FlightTime,
		MaxHeight:       req.Landing.MaxHeight,
		IsGroundBall:    req.Landing.IsGroundBall,
	}
	positions := make(map[models.FieldPosition]models.Vec2, len(req.FielderPositions))
	for abbrev, v := range req.FielderPositions {
		pos, ok := positionByAbbrev[abbrev]
		if !ok {
			http.Error(w, "unknown fielder position: "+abbrev, http.StatusBadRequest)
			return
		}
		positions[pos] = models.Vec2{X: v.X, Y: v.Y}
	}

	records := engine.EvaluateFielders(landing, positions, req.Bases.toModel(), req.Outs)

	out := make([]fielderDecisionJSON, 0, len(records))
	for _, rec := range records {
		out = append(out, fielderDecisionJSON{
			Position:       rec.Position.String(),
			Role:           actionName(rec.Role),
			ReachTime:      rec.ReachTime,
			CanReach:       rec.CanReach,
			InterceptPoint: vec2JSON{X: rec.InterceptPoint.X, Y: rec.InterceptPoint.Y},
		})
	}

	if s.stream != nil {
		s.stream.broadcastEvaluation(out)
	}

	writeJSON(w, out)
}

func (s *Server) simulateAtBatHandler(w http.ResponseWriter, r *http.Request) {
	var req simulateAtBatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	batter := models.Player{ID: "batter", Name: "batter", Batting: req.Batter.toModel()}
	pitcher := models.Player{ID: "pitcher", Name: "pitcher", Pitching: req.Pitcher.toModel()}

	defense := make(map[models.FieldPosition]models.Player, len(req.Defense))
	for abbrev, line := range req.Defense {
		pos, ok := positionByAbbrev[abbrev]
		if !ok {
			http.Error(w, "unknown fielder position: "+abbrev, http.StatusBadRequest)
			return
		}
		defense[pos] = models.Player{ID: abbrev, Name: abbrev, Position: pos, Batting: line.Batting.toModel()}
	}

	seed := req.Seed
	if seed == 0 {
		seed = randomSeed()
	}
	rng := rand.New(rand.NewSource(seed))

	var tracer engine.TickTracer
	if s.stream != nil && s.stream.hasClients() {
		tracer = func(snap engine.TickSnapshot) {
			s.stream.broadcastTick(fromTickSnapshot(snap))
		}
	}
	outcome := engine.SimulateAtBatWithTrace(batter, pitcher, defense, req.Bases.toModel(), req.Outs, req.Inning, rng, tracer)

	if s.audit != nil {
		atBatID := uuid.NewString()
		ctx, cancel := contextWithTimeout(r)
		defer cancel()
		if outcome.ForcedResolution {
			if err := s.audit.RecordForcedTermination(ctx, atBatID, req.Inning, outcome); err != nil {
				log.Printf("Warning: failed to record forced-termination audit event: %v", err)
			}
		}
		if outcome.AttributionAmbiguous {
			if err := s.audit.RecordAttributionAmbiguous(ctx, atBatID, req.Inning, outcome); err != nil {
				log.Printf("Warning: failed to record attribution-ambiguous audit event: %v", err)
			}
		}
		if len(outcome.MissingDefensePositions) > 0 {
			if err := s.audit.RecordImpossibleConfiguration(ctx, atBatID, req.Inning, outcome, outcome.MissingDefensePositions); err != nil {
				log.Printf("Warning: failed to record impossible-configuration audit event: %v", err)
			}
		}
	}

	var bbType, fielderPos *string
	if outcome.BattedBallType != nil {
		s := outcome.BattedBallType.String()
		bbType = &s
	}
	if outcome.FielderPos != nil {
		s := outcome.FielderPos.String()
		fielderPos = &s
	}

	missing := make([]string, len(outcome.MissingDefensePositions))
	for i, pos := range outcome.MissingDefensePositions {
		missing[i] = pos.String()
	}

	writeJSON(w, simulateAtBatResponse{
		Result:                  outcome.Result.String(),
		BattedBallType:          bbType,
		FielderPos:              fielderPos,
		RunsScored:              outcome.RunsScored,
		RBI:                     outcome.RBI,
		NewBaseState:            fromBaseState(outcome.NewBaseState),
		ForcedResolution:        outcome.ForcedResolution,
		AttributionAmbiguous:    outcome.AttributionAmbiguous,
		HighLeverage:            outcome.HighLeverage,
		StolenBaseAttempted:     outcome.StolenBaseAttempted,
		StolenBaseSuccess:       outcome.StolenBaseSuccess,
		MissingDefensePositions: missing,
		BattingDelta:            fromBattingDelta(outcome.BattingDelta),
		PitchingDelta:           fromPitchingDelta(outcome.PitchingDelta),
		FieldingDeltas:          fromFieldingDeltas(outcome.FieldingDeltas),
	})
}

// randomSeed derives a rng seed from a fresh UUID's entropy when the
// caller doesn't supply one, rather than reaching into math/rand's
// global source (the core never touches that — see models/trajectory.go
// and every engine function taking an explicit *rand.Rand).
func randomSeed() int64 {
	id := uuid.New()
	return int64(binary.BigEndian.Uint64(id[:8]))
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
