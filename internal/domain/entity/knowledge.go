package entity

type RelationDirection string

const (
	DirectionIncoming RelationDirection = "incoming"
	DirectionOutgoing RelationDirection = "outgoing"
)

type KGEntity struct {
	ID          string            `yaml:"id"`
	Type        string            `yaml:"type"`
	Label       string            `yaml:"label"`
	Description string            `yaml:"description"`
	Aliases     []string          `yaml:"aliases"`
	Properties  map[string]string `yaml:"properties"`
	Related     []KGRelation      `yaml:"related"`
}

type KGRelation struct {
	Type      string            `yaml:"type"`
	Direction RelationDirection `yaml:"direction"`
	TargetID  string            `yaml:"target"`
}

type KGRelationship struct {
	Type      string
	Direction RelationDirection
	Source    KGEntity
	Target    KGEntity
}

type KGQueryResult struct {
	Matched       []KGEntity
	Related       []KGEntity
	Relationships []KGRelationship
}
