package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config はコマンドライン引数から解析された設定を保持する
type Config struct {
	ScriptPaths []string      // 実行するスクリプトファイル（複数指定時は並列実行）
	Timeout     time.Duration // タイムアウト時間（0は無制限）
	LogLevel    string        // ログレベル（debug, info, warn, error）
	Headless    bool          // ヘッドレスモード
	OutputPath  string        // 実行後にキャンバスを書き出す画像ファイル
	ConfigPath  string        // YAML設定ファイル
	SavePath    string        // 読み込んだスクリプトをUTF-8/LFに正規化して保存するファイル
	CheckOnly   bool          // 構文チェックのみ
	ShowHelp    bool          // ヘルプ表示フラグ
}

// boolFlags は値を取らないフラグ
var boolFlags = map[string]bool{
	"-h": true, "--h": true, "-help": true, "--help": true,
	"-headless": true, "--headless": true,
	"-check": true, "--check": true,
}

// outputExtensions は --output に指定できる拡張子
var outputExtensions = map[string]bool{
	".png": true, ".bmp": true, ".tif": true, ".tiff": true,
}

// ParseArgs コマンドライン引数を解析してConfigを返す
func ParseArgs(args []string) (*Config, error) {
	// 引数を並べ替え：フラグを前に、位置引数を後ろに
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("pendraw", flag.ContinueOnError)

	config := &Config{}

	var timeoutSec int
	fs.IntVar(&timeoutSec, "timeout", 0, "タイムアウト時間（秒）")
	fs.IntVar(&timeoutSec, "t", 0, "タイムアウト時間（秒）（短縮形）")
	fs.StringVar(&config.LogLevel, "log-level", "info", "ログレベル（debug, info, warn, error）")
	fs.StringVar(&config.LogLevel, "l", "info", "ログレベル（短縮形）")
	fs.BoolVar(&config.Headless, "headless", false, "ヘッドレスモード")
	fs.StringVar(&config.OutputPath, "output", "", "出力画像ファイル（.png, .bmp, .tiff）")
	fs.StringVar(&config.OutputPath, "o", "", "出力画像ファイル（短縮形）")
	fs.StringVar(&config.ConfigPath, "config", "", "YAML設定ファイル")
	fs.StringVar(&config.ConfigPath, "c", "", "YAML設定ファイル（短縮形）")
	fs.StringVar(&config.SavePath, "save", "", "スクリプトをUTF-8/LFで保存するファイル")
	fs.BoolVar(&config.CheckOnly, "check", false, "構文チェックのみ実行")
	fs.BoolVar(&config.ShowHelp, "help", false, "ヘルプを表示")
	fs.BoolVar(&config.ShowHelp, "h", false, "ヘルプを表示（短縮形）")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	// 環境変数からの設定（コマンドラインフラグが優先）
	if !config.Headless {
		if headlessEnv := os.Getenv("HEADLESS"); headlessEnv != "" {
			config.Headless = headlessEnv == "1" || strings.ToLower(headlessEnv) == "true"
		}
	}

	// 環境変数からタイムアウトを取得（コマンドラインフラグが優先）
	if timeoutSec == 0 {
		if timeoutEnv := os.Getenv("TIMEOUT"); timeoutEnv != "" {
			if t, err := strconv.Atoi(timeoutEnv); err == nil && t > 0 {
				timeoutSec = t
			}
		}
	}

	// 環境変数からログレベルを取得（コマンドラインフラグが優先）
	if config.LogLevel == "info" {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = strings.ToLower(logLevelEnv)
		}
	}

	// タイムアウトの検証
	if timeoutSec < 0 {
		return nil, fmt.Errorf("timeout must be non-negative, got %d", timeoutSec)
	}
	config.Timeout = time.Duration(timeoutSec) * time.Second

	// ログレベルの検証
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	if config.OutputPath != "" {
		ext := strings.ToLower(filepath.Ext(config.OutputPath))
		if !outputExtensions[ext] {
			return nil, fmt.Errorf("unsupported output format %q (must be .png, .bmp or .tiff)", ext)
		}
	}

	// 位置引数（スクリプトファイル）
	config.ScriptPaths = fs.Args()

	return config, nil
}

// reorderArgs 引数を並べ替えて、フラグを前に、位置引数を後ろに配置する
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// フラグかどうかを判定（-または--で始まる）
		if len(arg) > 0 && arg[0] == '-' {
			flags = append(flags, arg)

			// -o=out.png のように値が含まれている場合
			if strings.Contains(arg, "=") || boolFlags[arg] {
				continue
			}

			// 次の引数が値である可能性をチェック（-t 5 のような場合）
			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				i++
				flags = append(flags, args[i])
			}
		} else {
			// 位置引数
			positional = append(positional, arg)
		}
	}

	// フラグを前に、位置引数を後ろに配置
	return append(flags, positional...)
}

// PrintHelp ヘルプメッセージを表示
func PrintHelp() {
	fmt.Fprintf(os.Stdout, `pendraw - drawing language interpreter

Usage:
  pendraw [options] <script> [script...]

Arguments:
  script        実行するスクリプトファイル
                ディレクトリを指定した場合はその中の .pd ファイルをすべて読み込む
                複数指定した場合は同じキャンバスに並列で描画

Options:
  -t, --timeout <seconds>     指定秒数後にプログラムを終了（デフォルト: 無制限）
  -l, --log-level <level>     ログレベル: debug, info, warn, error（デフォルト: info）
  --headless                  ヘッドレスモード（GUIなし）
  -o, --output <file>         実行後のキャンバスを画像として保存（.png, .bmp, .tiff）
  -c, --config <file>         YAML設定ファイル（キャンバスサイズ、背景色など）
  --save <file>               読み込んだスクリプトをUTF-8/LFに正規化して保存（スクリプト1つのみ）
  --check                     構文チェックのみ（実行しない）
  -h, --help                  このヘルプを表示

Environment Variables:
  HEADLESS=1                  ヘッドレスモードを有効化
  TIMEOUT=<seconds>           タイムアウト時間（秒）
  LOG_LEVEL=<level>           ログレベル

Examples:
  pendraw house.pd                      ウインドウに描画
  pendraw --headless -o out.png house.pd  ヘッドレスで描画してPNGに保存
  pendraw --check house.pd              構文チェックのみ
  pendraw --check --save utf8.pd sjis.pd  構文チェックしてUTF-8で保存
  pendraw a.pd b.pd                     2つのスクリプトを並列実行
  pendraw --timeout 10 house.pd         10秒後に自動終了
`)
}
