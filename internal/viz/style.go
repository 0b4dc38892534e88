package viz

import "fatecraft/internal/cascade"

// Style tables are configuration data. Connection styles key off the
// relationship type; node colors key off impact level.

var connectionStyles = map[cascade.RelationType]ConnectionStyle{
	cascade.RelationDirect:     {Line: "solid", Color: "#2e7d32"},
	cascade.RelationIndirect:   {Line: "dashed", Color: "#1565c0"},
	cascade.RelationAmplifying: {Line: "solid", Color: "#ef6c00"},
	cascade.RelationMitigating: {Line: "dotted", Color: "#c62828"},
}

var defaultConnectionStyle = ConnectionStyle{Line: "solid", Color: "#616161"}

var levelColors = map[cascade.ImpactLevel]string{
	cascade.LevelMinor:       "#9e9e9e",
	cascade.LevelModerate:    "#fdd835",
	cascade.LevelSignificant: "#fb8c00",
	cascade.LevelMajor:       "#e53935",
	cascade.LevelCritical:    "#b71c1c",
}

const (
	actionColor  = "#4a148c"
	defaultColor = "#9e9e9e"
)

func styleForConnection(t cascade.RelationType) ConnectionStyle {
	if s, ok := connectionStyles[t]; ok {
		return s
	}
	return defaultConnectionStyle
}

func colorForLevel(l cascade.ImpactLevel) string {
	if c, ok := levelColors[l]; ok {
		return c
	}
	return defaultColor
}
