package model

// ContentKind discrimina os tipos de conteúdo gerado pelo pipeline.
type ContentKind string

const (
	KindMission              ContentKind = "mission"
	KindRoadmap              ContentKind = "roadmap"
	KindSkill                ContentKind = "skill"
	KindSubmissionValidation ContentKind = "submission-validation"
)

// ContentSource indica qual caminho produziu o resultado.
type ContentSource string

const (
	SourceAI       ContentSource = "ai"
	SourceFallback ContentSource = "fallback"
)

// ContentRequest carrega o contexto de domínio necessário para montar o prompt
// de um tipo de conteúdo. Imutável, um uso por chamada.
type ContentRequest struct {
	Kind            ContentKind `json:"kind"`
	GoalName        string      `json:"goalName"`
	GoalDescription string      `json:"goalDescription,omitempty"`
	UserLevel       int         `json:"userLevel"`
	History         []string    `json:"history,omitempty"`
	Categories      []string    `json:"categories,omitempty"`
	SuccessCriteria string      `json:"successCriteria,omitempty"`
	SubmissionText  string      `json:"submissionText,omitempty"`
}

// ContentResult é a união discriminada paralela a ContentKind. Exatamente um
// campo de payload é não-nulo, conforme Kind. Os caminhos AI e fallback
// produzem valores intercambiáveis no nível de tipo.
type ContentResult struct {
	Kind       ContentKind        `json:"kind"`
	Source     ContentSource      `json:"source"`
	Mission    *Mission           `json:"mission,omitempty"`
	Roadmap    *Roadmap           `json:"roadmap,omitempty"`
	Skill      *Skill             `json:"skill,omitempty"`
	Submission *SubmissionVerdict `json:"submission,omitempty"`
}

// Mission é uma missão diária gerada.
type Mission struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	XP          int       `json:"xp"`
	Fragments   int       `json:"fragments"`
	Subtasks    []Subtask `json:"subtasks"`
}

// Subtask é uma etapa mensurável de uma missão.
type Subtask struct {
	Name   string `json:"name"`
	Target int    `json:"target"`
	Unit   string `json:"unit"`
}

// Roadmap é o plano estratégico de uma meta, dividido em fases.
type Roadmap struct {
	Phases []RoadmapPhase `json:"phases"`
}

// RoadmapPhase agrupa marcos de uma etapa do plano.
type RoadmapPhase struct {
	Name       string   `json:"name"`
	Milestones []string `json:"milestones"`
}

// Skill é uma habilidade derivada de uma meta.
type Skill struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// SubmissionVerdict é o julgamento de uma submissão de desafio.
// Nunca é sintetizado localmente: sem veredito do gerador, o fluxo falha.
type SubmissionVerdict struct {
	Approved bool   `json:"approved"`
	Feedback string `json:"feedback"`
}
