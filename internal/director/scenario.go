package director

// Document is the exported form of a Schedule
type Document struct {
	Version string        `yaml:"version"`
	Total   float64       `yaml:"total"` // Program length in seconds
	Scenes  []SceneRecord `yaml:"scenes"`
	Beats   []BeatRecord  `yaml:"beats"`
	Entries []EntryRecord `yaml:"entries"`
}

// SceneRecord places one scene on the program timeline
type SceneRecord struct {
	Name   string  `yaml:"name"`
	Start  float64 `yaml:"start"`
	End    float64 `yaml:"end"`
	Window *Window `yaml:"window,omitempty"`
}

// BeatRecord places one beat; End excludes the hold
type BeatRecord struct {
	Scene string  `yaml:"scene"`
	Index int     `yaml:"index"`
	Label string  `yaml:"label"`
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	Hold  float64 `yaml:"hold,omitempty"`
}

// EntryRecord is one scheduled clip
type EntryRecord struct {
	Scene    string  `yaml:"scene"`
	Beat     int     `yaml:"beat"`
	Entity   string  `yaml:"entity"`
	Part     string  `yaml:"part,omitempty"` // empty for whole-entity clips
	Index    int     `yaml:"index"`
	Property string  `yaml:"property"`
	Start    float64 `yaml:"start"`
	End      float64 `yaml:"end"`
	Easing   string  `yaml:"easing"`
	Relative bool    `yaml:"relative,omitempty"`
	Path     string  `yaml:"path"`
}
