package window

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/zurustar/pendraw/pkg/logger"
)

var (
	// ステータスバーの背景色
	statusBackground = color.RGBA{0x30, 0x30, 0x30, 0xFF}
	// ステータスバーのテキスト色（白）
	statusTextColor = color.White
	// デフォルトフォント
	defaultFace = text.NewGoXFace(basicfont.Face7x13)
)

// StatusBarHeight はキャンバス下に表示するステータスバーの高さ
const StatusBarHeight = 20

// Source はウィンドウに表示するキャンバス
type Source interface {
	Size() (int, int)
	Version() uint64
	Snapshot() *image.RGBA
}

// Game はEbitengineのゲームインターフェースを実装する
type Game struct {
	source    Source
	timeout   time.Duration // タイムアウト時間
	startTime time.Time     // 開始時刻

	canvasImage *ebiten.Image
	uploaded    uint64 // 最後にアップロードしたキャンバスのバージョン
	hasUploaded bool

	// 実行開始の制御（最初のUpdate()で一度だけ呼ばれる）
	startFunc func()
	started   bool

	status string
	mu     sync.RWMutex
}

// NewGame Gameを作成
func NewGame(source Source, timeout time.Duration) *Game {
	return &Game{
		source:    source,
		timeout:   timeout,
		startTime: time.Now(),
		status:    "ready",
	}
}

// SetStartFunc はスクリプト実行を開始する関数を設定する
// Ebitengineが初期化された後、最初のUpdate()で呼び出される
func (g *Game) SetStartFunc(startFunc func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.startFunc = startFunc
}

// SetStatus はステータスバーに表示する文字列を設定する
func (g *Game) SetStatus(format string, args ...any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = fmt.Sprintf(format, args...)
}

// Status は現在のステータス文字列を返す
func (g *Game) Status() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status
}

// timedOut はタイムアウトに達したかどうかを返す
func (g *Game) timedOut(now time.Time) bool {
	return g.timeout > 0 && now.Sub(g.startTime) >= g.timeout
}

// Update ゲームロジックの更新（Ebitengineが毎フレーム呼び出す）
func (g *Game) Update() error {
	// タイムアウトチェック
	if g.timedOut(time.Now()) {
		logger.GetLogger().Info("Window timeout reached", "timeout", g.timeout)
		return ebiten.Termination
	}

	// 実行開始（最初のUpdate()呼び出し時のみ）
	g.mu.Lock()
	if !g.started && g.startFunc != nil {
		g.started = true
		go g.startFunc()
	}
	g.mu.Unlock()

	// Escキーで終了（1回だけ反応）
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	return nil
}

// needsUpload はキャンバスの再アップロードが必要かどうかを返す
func (g *Game) needsUpload(version uint64) bool {
	return !g.hasUploaded || version != g.uploaded
}

// Draw 画面描画（Ebitengineが毎フレーム呼び出す）
func (g *Game) Draw(screen *ebiten.Image) {
	w, h := g.source.Size()

	// キャンバスが変化したときだけピクセルを転送する
	if version := g.source.Version(); g.needsUpload(version) {
		if g.canvasImage == nil {
			g.canvasImage = ebiten.NewImage(w, h)
		}
		g.canvasImage.WritePixels(g.source.Snapshot().Pix)
		g.uploaded = version
		g.hasUploaded = true
	}
	screen.DrawImage(g.canvasImage, nil)

	g.drawStatus(screen, w, h)
}

// drawStatus ステータスバーの描画
func (g *Game) drawStatus(screen *ebiten.Image, w, h int) {
	bar := screen.SubImage(image.Rect(0, h, w, h+StatusBarHeight)).(*ebiten.Image)
	bar.Fill(statusBackground)

	op := &text.DrawOptions{}
	op.GeoM.Translate(6, float64(h)+4)
	op.ColorScale.ScaleWithColor(statusTextColor)
	text.Draw(screen, g.Status(), defaultFace, op)
}

// Layout 画面サイズを返す（キャンバス＋ステータスバー）
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.source.Size()
	return w, h + StatusBarHeight
}

// Run GUIモードでウィンドウを実行
// startFuncは別goroutineで実行され、終了後も Esc が押されるかタイムアウトまでウィンドウは開いたまま
func Run(game *Game, title string) error {
	w, h := game.Layout(0, 0)

	// ウィンドウ設定
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// ゲームを実行
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("failed to run game: %w", err)
	}
	return nil
}
