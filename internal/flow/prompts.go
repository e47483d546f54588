package flow

import (
	"fmt"
	"strings"

	"github.com/F3lipe-Silva/sistemalife-sub002/internal/model"
)

// maxHistoryEntries limita o histórico embutido no prompt para conter o
// consumo de tokens.
const maxHistoryEntries = 5

// System prompts por tipo de conteúdo. As instruções exigem JSON estrito no
// formato do contrato; o gateway valida de qualquer forma.
const (
	missionSystemPrompt = `Você é o Sistema, um mestre de RPG que transforma metas reais em missões diárias. ` +
		`Responda APENAS com um objeto JSON com os campos: "name" (string), "description" (string), ` +
		`"xp" (inteiro >= 0), "fragments" (inteiro >= 0) e "subtasks" (lista não vazia de objetos ` +
		`com "name", "target" inteiro >= 1 e "unit" string). A missão deve ser realizável em um dia ` +
		`e proporcional ao nível do jogador. Sem texto fora do JSON.`

	roadmapSystemPrompt = `Você é o Sistema, um estrategista que desenha planos de longo prazo para metas reais. ` +
		`Responda APENAS com um objeto JSON com o campo "phases": lista de 2 a 4 fases, cada uma com ` +
		`"name" (string) e "milestones" (lista de 3 a 5 strings com marcos concretos e mensuráveis). ` +
		`Sem texto fora do JSON.`

	skillSystemPrompt = `Você é o Sistema, que deriva habilidades de RPG das metas do jogador. ` +
		`Responda APENAS com um objeto JSON com os campos: "name" (string), "description" (string) e ` +
		`"category" (string). Se uma lista de categorias for fornecida, escolha uma delas. ` +
		`Sem texto fora do JSON.`

	submissionSystemPrompt = `Você é o Sistema, juiz imparcial de submissões de desafios. Avalie se a submissão ` +
		`cumpre os critérios de sucesso. Responda APENAS com um objeto JSON com os campos: ` +
		`"approved" (booleano) e "feedback" (string curta, até 500 caracteres, justificando o veredito). ` +
		`Sem texto fora do JSON.`
)

// renderMissionPrompt monta o contexto do usuário para geração de missão.
func renderMissionPrompt(req model.ContentRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Meta: %s\n", req.GoalName)
	if req.GoalDescription != "" {
		fmt.Fprintf(&b, "Descrição da meta: %s\n", req.GoalDescription)
	}
	fmt.Fprintf(&b, "Nível do jogador: %d\n", req.UserLevel)
	writeHistory(&b, req.History)
	return b.String()
}

func renderRoadmapPrompt(req model.ContentRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Meta: %s\n", req.GoalName)
	if req.GoalDescription != "" {
		fmt.Fprintf(&b, "Descrição da meta: %s\n", req.GoalDescription)
	}
	fmt.Fprintf(&b, "Nível do jogador: %d\n", req.UserLevel)
	return b.String()
}

func renderSkillPrompt(req model.ContentRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Meta: %s\n", req.GoalName)
	if req.GoalDescription != "" {
		fmt.Fprintf(&b, "Descrição da meta: %s\n", req.GoalDescription)
	}
	if len(req.Categories) > 0 {
		fmt.Fprintf(&b, "Categorias existentes: %s\n", strings.Join(req.Categories, ", "))
	}
	return b.String()
}

func renderSubmissionPrompt(req model.ContentRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Desafio: %s\n", req.GoalName)
	fmt.Fprintf(&b, "Critérios de sucesso: %s\n", req.SuccessCriteria)
	fmt.Fprintf(&b, "Submissão do jogador:\n%s\n", req.SubmissionText)
	return b.String()
}

func writeHistory(b *strings.Builder, history []string) {
	if len(history) == 0 {
		return
	}
	if len(history) > maxHistoryEntries {
		history = history[len(history)-maxHistoryEntries:]
	}
	b.WriteString("Missões recentes (evite repetir):\n")
	for _, entry := range history {
		fmt.Fprintf(b, "- %s\n", entry)
	}
}
