package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/zurustar/pendraw/pkg/interpreter"
)

// SyntaxOK はCheckSyntaxが成功したときにキャンバスへ表示するメッセージ
const SyntaxOK = "Syntax is okay!"

// CommandService はインタプリタとレンダラーを結び付ける
// 単発の実行は共有のContextを使うため、続けて実行すると状態（カーソル・変数・メソッド）が引き継がれる
type CommandService struct {
	interp   *interpreter.Interpreter
	renderer interpreter.Renderer
	log      *slog.Logger

	mu  sync.Mutex // ctx を保護
	ctx *interpreter.Context
}

// NewCommandService は新しいCommandServiceを作成する
func NewCommandService(renderer interpreter.Renderer, log *slog.Logger) *CommandService {
	if log == nil {
		log = slog.Default()
	}
	return &CommandService{
		interp:   interpreter.New(interpreter.WithLogger(log)),
		renderer: renderer,
		log:      log,
		ctx:      interpreter.NewContext(),
	}
}

// Run はスクリプトを共有Contextで実行する
func (s *CommandService) Run(src string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interp.Run(src, s.renderer, s.ctx)
}

// ExecuteCommands はスクリプトを実行し、失敗した場合はキャンバスを消去してエラーを表示する
func (s *CommandService) ExecuteCommands(src string) error {
	if err := s.Run(src); err != nil {
		s.ClearCanvas()
		s.DisplayMessage(err.Error())
		return err
	}
	return nil
}

// CheckSyntax は構文チェックのみを行い、結果をキャンバスに表示する
// 成功時は (true, "")、失敗時は (false, エラーメッセージ) を返す
func (s *CommandService) CheckSyntax(src string) (bool, string) {
	s.ClearCanvas()
	if err := s.interp.CheckSyntax(src); err != nil {
		s.log.Info("Syntax check failed", "error", err)
		s.DisplayMessage(err.Error())
		return false, err.Error()
	}
	s.log.Info("Syntax check passed")
	s.DisplayMessage(SyntaxOK)
	return true, ""
}

// DisplayMessage はキャンバスにメッセージを表示する
func (s *CommandService) DisplayMessage(msg string) {
	s.renderer.DisplayMessage(msg)
}

// ClearCanvas はキャンバスを消去する
func (s *CommandService) ClearCanvas() {
	s.renderer.Clear()
}

// RunParallel は複数のスクリプトを並列に実行する
// 各スクリプトはそれぞれ新しいContextで実行され、レンダラーのみ共有される
// 最初のエラーでまだ開始していないスクリプトはキャンセルされる
func (s *CommandService) RunParallel(ctx context.Context, sources []string) error {
	g, gctx := errgroup.WithContext(ctx)

	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s.log.Debug("Parallel script started", "index", i)
			if err := s.interp.Run(src, s.renderer, interpreter.NewContext()); err != nil {
				return fmt.Errorf("script %d: %w", i+1, err)
			}
			s.log.Debug("Parallel script finished", "index", i)
			return nil
		})
	}

	return g.Wait()
}
