package meshing

import (
	"context"
	"sync"

	"blockworld/internal/world"
)

// MeshJob asks the pool to build one chunk.
type MeshJob struct {
	World world.BlockGetter
	Chunk *world.Chunk
	// Result channel - will be sent the result when done
	ResultChan chan<- MeshResult
}

// MeshResult contains the result of a meshing operation
type MeshResult struct {
	Coord world.ChunkCoord
	Mesh  *Mesh
}

// WorkerPool builds chunk meshes on several goroutines. Building only reads the world,
// so jobs may run in parallel as long as nothing writes to the world meanwhile.
// Workers never touch dirty flags; the caller marks chunks clean once results arrive.
type WorkerPool struct {
	builder  Builder
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool creates a new mesh worker pool
func NewWorkerPool(workers, queueSize int, b Builder) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	pool := &WorkerPool{
		builder:  b,
		jobQueue: make(chan MeshJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}
	return pool
}

// SubmitJob returns false if the queue is full.
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// SubmitJobBlocking submits a job and blocks until it's queued or the pool shuts down.
func (p *WorkerPool) SubmitJobBlocking(job MeshJob) bool {
	select {
	case p.jobQueue <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			m := &Mesh{}
			p.builder.BuildChunk(m, job.World, job.Chunk)
			select {
			case job.ResultChan <- MeshResult{Coord: job.Chunk.Coord(), Mesh: m}:
			case <-p.ctx.Done():
				return
			}
		case <-p.ctx.Done():
			return
		}
	}
}

// BuildAll meshes every chunk in parallel and returns the results in input order.
func (p *WorkerPool) BuildAll(w world.BlockGetter, chunks []*world.Chunk) []MeshResult {
	results := make(chan MeshResult, len(chunks))
	submitted := 0
	for _, c := range chunks {
		if !p.SubmitJobBlocking(MeshJob{World: w, Chunk: c, ResultChan: results}) {
			break
		}
		submitted++
	}

	byKey := make(map[int64]MeshResult, submitted)
collect:
	for i := 0; i < submitted; i++ {
		select {
		case r := <-results:
			byKey[r.Coord.Key()] = r
		case <-p.ctx.Done():
			break collect
		}
	}

	out := make([]MeshResult, 0, len(byKey))
	for _, c := range chunks {
		if r, ok := byKey[c.Coord().Key()]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Shutdown stops the workers and waits for them to exit. Queued jobs are dropped.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
