package graphics

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"
)

// OperationRecord は描画操作の記録を表す
type OperationRecord struct {
	Operation string
	Args      map[string]any
}

// HeadlessRenderer はヘッドレスモード用のレンダラー
// 描画操作をログと履歴に記録する。キャンバスが設定されていればそちらにも転送する
type HeadlessRenderer struct {
	canvas *Canvas

	log              *slog.Logger
	logOperations    bool // 描画操作をログに記録するかどうか
	recordHistory    bool // 操作履歴を保持するかどうか
	operationHistory []OperationRecord
	historyMu        sync.RWMutex
}

// HeadlessOption は HeadlessRenderer のオプションを設定する関数型
type HeadlessOption func(*HeadlessRenderer)

// WithHeadlessLogger はロガーを設定する
func WithHeadlessLogger(log *slog.Logger) HeadlessOption {
	return func(hr *HeadlessRenderer) {
		hr.log = log
	}
}

// WithLogOperations は描画操作のログ記録を有効/無効にする
func WithLogOperations(enabled bool) HeadlessOption {
	return func(hr *HeadlessRenderer) {
		hr.logOperations = enabled
	}
}

// WithRecordHistory は操作履歴の記録を有効/無効にする
func WithRecordHistory(enabled bool) HeadlessOption {
	return func(hr *HeadlessRenderer) {
		hr.recordHistory = enabled
	}
}

// WithCanvas は描画操作の転送先キャンバスを設定する（画像出力用）
func WithCanvas(cv *Canvas) HeadlessOption {
	return func(hr *HeadlessRenderer) {
		hr.canvas = cv
	}
}

// NewHeadlessRenderer は新しいHeadlessRendererを作成する
func NewHeadlessRenderer(opts ...HeadlessOption) *HeadlessRenderer {
	hr := &HeadlessRenderer{
		log:              slog.Default(),
		logOperations:    true,
		recordHistory:    false,
		operationHistory: make([]OperationRecord, 0),
	}

	// オプションを適用
	for _, opt := range opts {
		opt(hr)
	}

	hr.log.Info("HeadlessRenderer initialized", "canvas", hr.canvas != nil)
	return hr
}

// Canvas は転送先キャンバスを返す（未設定ならnil）
func (hr *HeadlessRenderer) Canvas() *Canvas {
	return hr.canvas
}

// logOperation は描画操作をログに記録する
func (hr *HeadlessRenderer) logOperation(operation string, args ...any) {
	if hr.logOperations {
		hr.log.Debug(fmt.Sprintf("[Headless] %s", operation), args...)
	}

	// 操作履歴を記録
	if hr.recordHistory {
		record := OperationRecord{
			Operation: operation,
			Args:      make(map[string]any),
		}
		// argsをkey-valueペアとして解析
		for i := 0; i < len(args)-1; i += 2 {
			if key, ok := args[i].(string); ok {
				record.Args[key] = args[i+1]
			}
		}
		hr.historyMu.Lock()
		hr.operationHistory = append(hr.operationHistory, record)
		hr.historyMu.Unlock()
	}
}

// GetOperationHistory は操作履歴を返す
func (hr *HeadlessRenderer) GetOperationHistory() []OperationRecord {
	hr.historyMu.RLock()
	defer hr.historyMu.RUnlock()
	// コピーを返す
	result := make([]OperationRecord, len(hr.operationHistory))
	copy(result, hr.operationHistory)
	return result
}

// ClearOperationHistory は操作履歴をクリアする
func (hr *HeadlessRenderer) ClearOperationHistory() {
	hr.historyMu.Lock()
	defer hr.historyMu.Unlock()
	hr.operationHistory = make([]OperationRecord, 0)
}

// GetOperationCount は操作履歴の件数を返す
func (hr *HeadlessRenderer) GetOperationCount() int {
	hr.historyMu.RLock()
	defer hr.historyMu.RUnlock()
	return len(hr.operationHistory)
}

func (hr *HeadlessRenderer) MoveTo(p image.Point) {
	hr.logOperation("MoveTo", "x", p.X, "y", p.Y)
	if hr.canvas != nil {
		hr.canvas.MoveTo(p)
	}
}

func (hr *HeadlessRenderer) DrawLine(from, to image.Point, c color.RGBA) {
	hr.logOperation("DrawLine", "x1", from.X, "y1", from.Y, "x2", to.X, "y2", to.Y, "color", FormatHexColor(c))
	if hr.canvas != nil {
		hr.canvas.DrawLine(from, to, c)
	}
}

func (hr *HeadlessRenderer) DrawCircle(center image.Point, radius int, c color.RGBA, fill bool) {
	hr.logOperation("DrawCircle", "x", center.X, "y", center.Y, "radius", radius, "color", FormatHexColor(c), "fill", fill)
	if hr.canvas != nil {
		hr.canvas.DrawCircle(center, radius, c, fill)
	}
}

func (hr *HeadlessRenderer) DrawRectangle(origin image.Point, width, height int, c color.RGBA, fill bool) {
	hr.logOperation("DrawRectangle", "x", origin.X, "y", origin.Y, "width", width, "height", height,
		"color", FormatHexColor(c), "fill", fill)
	if hr.canvas != nil {
		hr.canvas.DrawRectangle(origin, width, height, c, fill)
	}
}

func (hr *HeadlessRenderer) DrawPolygon(vertices []image.Point, c color.RGBA, fill bool) {
	pts := append([]image.Point(nil), vertices...)
	hr.logOperation("DrawPolygon", "vertices", pts, "color", FormatHexColor(c), "fill", fill)
	if hr.canvas != nil {
		hr.canvas.DrawPolygon(vertices, c, fill)
	}
}

func (hr *HeadlessRenderer) SetPenColor(c color.RGBA) {
	hr.logOperation("SetPenColor", "color", FormatHexColor(c))
	if hr.canvas != nil {
		hr.canvas.SetPenColor(c)
	}
}

func (hr *HeadlessRenderer) SetFill(fill bool) {
	hr.logOperation("SetFill", "fill", fill)
	if hr.canvas != nil {
		hr.canvas.SetFill(fill)
	}
}

func (hr *HeadlessRenderer) Clear() {
	hr.logOperation("Clear")
	if hr.canvas != nil {
		hr.canvas.Clear()
	}
}

func (hr *HeadlessRenderer) DrawPointer(p image.Point) {
	hr.logOperation("DrawPointer", "x", p.X, "y", p.Y)
	if hr.canvas != nil {
		hr.canvas.DrawPointer(p)
	}
}

// DisplayMessage はメッセージをログに出力する（ヘッドレスモードでは画面がないため Info で出す）
func (hr *HeadlessRenderer) DisplayMessage(msg string) {
	hr.log.Info("[Headless] DisplayMessage", "message", msg)
	hr.logOperation("DisplayMessage", "message", msg)
	if hr.canvas != nil {
		hr.canvas.DisplayMessage(msg)
	}
}
