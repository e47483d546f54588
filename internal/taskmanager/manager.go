// Package taskmanager executa gerações de conteúdo em segundo plano. Uma
// geração pode levar dezenas de segundos no caminho AI; os clientes que não
// querem segurar a conexão submetem uma tarefa e consultam o resultado depois.
package taskmanager

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/F3lipe-Silva/sistemalife-sub002/internal/model"
)

var (
	ErrTooManyTasks   = errors.New("número máximo de tarefas ativas atingido")
	ErrTaskNotFound   = errors.New("tarefa não encontrada")
	ErrNotCancellable = errors.New("tarefa não pode ser cancelada no estado atual")
)

// Status representa o estado de uma tarefa de geração.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// GenerateFunc é o trabalho executado pela tarefa. O contexto recebido é
// independente da requisição HTTP que a criou.
type GenerateFunc func(ctx context.Context) (*model.ContentResult, error)

// Task é o registro consultável de uma geração em segundo plano.
type Task struct {
	ID        uuid.UUID            `json:"id"`
	Kind      model.ContentKind    `json:"kind"`
	Status    Status               `json:"status"`
	Message   string               `json:"message,omitempty"`
	Result    *model.ContentResult `json:"result,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`

	cancel context.CancelFunc
}

// Manager mantém as tarefas em memória e limita quantas rodam ao mesmo tempo.
type Manager struct {
	mu        sync.RWMutex
	tasks     map[uuid.UUID]*Task
	maxActive int
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// New cria um Manager. maxActive <= 0 usa 10.
func New(maxActive int, logger *zap.Logger) *Manager {
	if maxActive <= 0 {
		maxActive = 10
	}
	return &Manager{
		tasks:     make(map[uuid.UUID]*Task),
		maxActive: maxActive,
		logger:    logger.Named("TaskManager"),
	}
}

// Submit registra a tarefa e dispara a execução. A tarefa roda sob um contexto
// próprio, desacoplado do contexto do chamador: fechar a conexão HTTP não
// cancela a geração.
func (m *Manager) Submit(kind model.ContentKind, fn GenerateFunc) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := 0
	for _, task := range m.tasks {
		if task.Status == StatusPending || task.Status == StatusRunning {
			active++
		}
	}
	if active >= m.maxActive {
		return uuid.UUID{}, ErrTooManyTasks
	}

	taskCtx, cancel := context.WithCancel(context.Background())
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		Kind:      kind,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
		cancel:    cancel,
	}
	m.tasks[task.ID] = task

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer cancel()
		m.run(taskCtx, task, fn)
	}()

	return task.ID, nil
}

func (m *Manager) run(ctx context.Context, task *Task, fn GenerateFunc) {
	m.update(task, StatusRunning, "", nil)

	result, err := fn(ctx)

	if ctx.Err() != nil {
		m.logger.Info("Tarefa de geração cancelada", zap.String("taskID", task.ID.String()))
		m.update(task, StatusCancelled, "geração cancelada", nil)
		return
	}
	if err != nil {
		m.logger.Warn("Tarefa de geração falhou",
			zap.String("taskID", task.ID.String()),
			zap.String("kind", string(task.Kind)),
			zap.Error(err))
		m.update(task, StatusFailed, err.Error(), nil)
		return
	}
	m.update(task, StatusCompleted, "", result)
}

func (m *Manager) update(task *Task, status Status, message string, result *model.ContentResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task.Status = status
	task.Message = message
	task.Result = result
	task.UpdatedAt = time.Now().UTC()
}

// Get devolve uma cópia da tarefa, segura para serializar fora do lock.
func (m *Manager) Get(taskID uuid.UUID) (Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	task, ok := m.tasks[taskID]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return *task, nil
}

// Cancel interrompe uma tarefa pendente ou em execução.
func (m *Manager) Cancel(taskID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[taskID]
	if !ok {
		return ErrTaskNotFound
	}
	if task.Status != StatusPending && task.Status != StatusRunning {
		return ErrNotCancellable
	}
	task.cancel()
	return nil
}

// Cleanup remove tarefas terminais mais antigas que age.
func (m *Manager) Cleanup(age time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().UTC().Add(-age)
	for id, task := range m.tasks {
		switch task.Status {
		case StatusCompleted, StatusFailed, StatusCancelled:
			if task.UpdatedAt.Before(cutoff) {
				delete(m.tasks, id)
			}
		}
	}
}

// Shutdown cancela as tarefas ativas e espera as goroutines terminarem, até o
// prazo do contexto.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	for _, task := range m.tasks {
		if task.Status == StatusPending || task.Status == StatusRunning {
			task.cancel()
		}
	}
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.New("timeout esperando tarefas terminarem")
	}
}
