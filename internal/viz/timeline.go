package viz

// buildTimeline discretizes [0, max(latest connection end, 15s)] into fixed
// keyframes. Nodes are always active; a connection is active in every frame
// whose timestamp falls inside its window.
func buildTimeline(nodes []*Node, connections []*Connection) TemporalProgression {
	total := int64(minTimelineSpanMs)
	for _, c := range connections {
		if c.ActiveUntilMs > total {
			total = c.ActiveUntilMs
		}
	}

	nodeIDs := make([]string, 0, len(nodes))
	for _, n := range nodes {
		nodeIDs = append(nodeIDs, n.ID)
	}

	frames := make([]KeyFrame, 0, total/keyFrameStepMs+1)
	for t := int64(0); t <= total; t += keyFrameStepMs {
		var active []string
		for _, c := range connections {
			if c.ActiveFromMs <= t && t <= c.ActiveUntilMs {
				active = append(active, c.ID)
			}
		}
		frames = append(frames, KeyFrame{
			TimeMs:            t,
			ActiveNodes:       nodeIDs,
			ActiveConnections: active,
		})
	}

	return TemporalProgression{
		TotalDurationMs: total,
		KeyFrames:       frames,
	}
}
