package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/zurustar/pendraw/pkg/cli"
	"github.com/zurustar/pendraw/pkg/config"
	"github.com/zurustar/pendraw/pkg/graphics"
	"github.com/zurustar/pendraw/pkg/interpreter"
	"github.com/zurustar/pendraw/pkg/logger"
	"github.com/zurustar/pendraw/pkg/script"
	"github.com/zurustar/pendraw/pkg/window"
)

// ErrTimeout はタイムアウトまでにスクリプトが終了しなかったことを表す
var ErrTimeout = errors.New("timeout reached before scripts finished")

// Application はアプリケーションのメインロジックを管理する
type Application struct {
	config   *cli.Config
	settings *config.Settings
	log      *slog.Logger
	scripts  []script.Script
	canvas   *graphics.Canvas
	service  *CommandService

	stdout    io.Writer
	logWriter io.Writer
}

// Option はApplicationの設定を変更する
type Option func(*Application)

// WithStdout は結果表示の出力先を設定する
func WithStdout(w io.Writer) Option {
	return func(app *Application) {
		app.stdout = w
	}
}

// WithLogWriter はログの出力先を設定する
func WithLogWriter(w io.Writer) Option {
	return func(app *Application) {
		app.logWriter = w
	}
}

// New Applicationを作成
func New(opts ...Option) *Application {
	app := &Application{
		stdout:    os.Stdout,
		logWriter: os.Stderr,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Canvas は描画先キャンバスを返す（Run前はnil）
func (app *Application) Canvas() *graphics.Canvas {
	return app.canvas
}

// Run アプリケーションを実行
func (app *Application) Run(args []string) error {
	// 1. コマンドライン引数の解析
	if err := app.parseArgs(args); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if app.config.ShowHelp {
		cli.PrintHelp()
		return nil
	}

	// 2. ロガーの初期化
	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.log.Info("Application started")

	// 3. 設定ファイルの読み込み
	if err := app.loadSettings(); err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 4. スクリプトファイルの読み込み
	if err := app.loadScripts(); err != nil {
		return fmt.Errorf("failed to load scripts: %w", err)
	}

	app.log.Info("Scripts loaded", "count", len(app.scripts))
	for _, s := range app.scripts {
		app.log.Info("Script file", "name", s.FileName, "size", s.Size, "encoding", s.Encoding)
		app.log.Debug("Script content preview", "name", s.FileName, "preview", truncate(s.Content, 100))
	}

	// 5. 正規化したスクリプトの保存（指定されている場合）
	if app.config.SavePath != "" {
		if err := app.saveScript(); err != nil {
			return fmt.Errorf("failed to save script: %w", err)
		}
	}

	// 6. キャンバスとレンダラーの準備
	app.setupRenderer()

	// 7. 構文チェックまたは実行
	work := app.executeScripts
	if app.config.CheckOnly {
		work = func(context.Context) error { return app.checkScripts() }
	}

	var runErr error
	if app.config.Headless {
		runErr = app.runHeadless(work)
	} else {
		runErr = app.runWindow(work)
	}

	// 8. キャンバスの書き出し（エラー時も描画済みの内容を保存する）
	if app.config.OutputPath != "" {
		if err := graphics.SaveImage(app.config.OutputPath, app.canvas.Snapshot()); err != nil {
			return errors.Join(runErr, fmt.Errorf("failed to export canvas: %w", err))
		}
		app.log.Info("Canvas exported", "path", app.config.OutputPath)
	}

	if runErr != nil {
		return runErr
	}

	app.log.Info("Application terminated normally")
	return nil
}

// parseArgs コマンドライン引数を解析
func (app *Application) parseArgs(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	app.config = config
	return nil
}

// initLogger ロガーを初期化
func (app *Application) initLogger() error {
	if err := logger.InitLoggerWithWriter(app.config.LogLevel, app.logWriter); err != nil {
		return err
	}
	app.log = logger.GetLogger()
	return nil
}

// loadSettings YAML設定を読み込む（未指定ならデフォルト）
func (app *Application) loadSettings() error {
	settings, err := config.Load(app.config.ConfigPath)
	if err != nil {
		return err
	}
	app.settings = settings
	app.log.Debug("Settings loaded",
		"width", settings.Canvas.Width,
		"height", settings.Canvas.Height,
		"background", settings.Canvas.Background)
	return nil
}

// loadScripts スクリプトファイルを読み込む
func (app *Application) loadScripts() error {
	scripts, err := script.LoadAll(app.config.ScriptPaths)
	if err != nil {
		return err
	}
	app.scripts = scripts
	return nil
}

// saveScript 読み込んだスクリプトをUTF-8/LFで保存する
// 複数のスクリプトを1ファイルにまとめることはしない
func (app *Application) saveScript() error {
	if len(app.scripts) != 1 {
		return fmt.Errorf("--save needs exactly one script, got %d", len(app.scripts))
	}
	s := app.scripts[0]
	if err := script.Save(app.config.SavePath, script.Lines(s.Content)); err != nil {
		return err
	}
	app.log.Info("Script saved", "from", s.FileName, "encoding", s.Encoding, "to", app.config.SavePath)
	return nil
}

// setupRenderer キャンバスを作成し、モードに応じたレンダラーでサービスを構築する
func (app *Application) setupRenderer() {
	opts := append(app.settings.CanvasOptions(), graphics.WithCanvasLogger(app.log))
	app.canvas = graphics.NewCanvas(app.settings.Canvas.Width, app.settings.Canvas.Height, opts...)

	var renderer interpreter.Renderer = app.canvas
	if app.config.Headless {
		// ヘッドレスモードでは操作をログに記録しつつキャンバスにも描画する
		renderer = graphics.NewHeadlessRenderer(
			graphics.WithHeadlessLogger(app.log),
			graphics.WithCanvas(app.canvas),
		)
	}
	app.service = NewCommandService(renderer, app.log)
}

// checkScripts 全スクリプトの構文をチェックし、結果を出力する
func (app *Application) checkScripts() error {
	failed := 0
	for _, s := range app.scripts {
		ok, msg := app.service.CheckSyntax(s.Content)
		if ok {
			fmt.Fprintf(app.stdout, "%s: %s\n", s.FileName, SyntaxOK)
			continue
		}
		failed++
		fmt.Fprintf(app.stdout, "%s: %s\n", s.FileName, msg)
	}
	if failed > 0 {
		return fmt.Errorf("syntax check failed for %d of %d script(s)", failed, len(app.scripts))
	}
	return nil
}

// executeScripts スクリプトを実行する
// 1つなら共有Contextで、複数なら並列に実行する
func (app *Application) executeScripts(ctx context.Context) error {
	if len(app.scripts) == 1 {
		return app.service.ExecuteCommands(app.scripts[0].Content)
	}

	sources := make([]string, len(app.scripts))
	for i, s := range app.scripts {
		sources[i] = s.Content
	}
	if err := app.service.RunParallel(ctx, sources); err != nil {
		app.service.ClearCanvas()
		app.service.DisplayMessage(err.Error())
		return err
	}
	return nil
}

// runHeadless ヘッドレスモードで実行する
// タイムアウトが指定されている場合、それまでに終わらなければErrTimeoutを返す
func (app *Application) runHeadless(work func(context.Context) error) error {
	app.log.Info("Headless mode: running without window")

	ctx := context.Background()
	if app.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, app.config.Timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- work(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		app.log.Warn("Timeout reached, terminating", "timeout", app.config.Timeout)
		return ErrTimeout
	}
}

// runWindow GUIモードで実行する
// スクリプトはウィンドウ表示後に別goroutineで実行され、ウィンドウはEscかタイムアウトで閉じる
func (app *Application) runWindow(work func(context.Context) error) error {
	game := window.NewGame(app.canvas, app.config.Timeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu     sync.Mutex
		result error
	)
	game.SetStartFunc(func() {
		game.SetStatus("running %d script(s)", len(app.scripts))
		err := work(ctx)

		mu.Lock()
		result = err
		mu.Unlock()

		if err != nil {
			game.SetStatus("error (ESC to close)")
			return
		}
		game.SetStatus("done (ESC to close)")
	})

	if err := window.Run(game, app.settings.Window.Title); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	return result
}

// truncate 文字列を指定した長さで切り詰める
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
