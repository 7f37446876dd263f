// Package vm implements the interactive REPL the embedder uses to load,
// step, and inspect scripts against the Engine API directly — the
// debugging front end the core specification calls out as an external,
// ambient-layer consumer, not part of the interpreter itself.
package vm

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/mr-tron/base58"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/timloh-gtoken/neo-vm/pkg/asm"
	"github.com/timloh-gtoken/neo-vm/pkg/config"
	"github.com/timloh-gtoken/neo-vm/pkg/encoding/bigint"
	"github.com/timloh-gtoken/neo-vm/pkg/hostcall"
	"github.com/timloh-gtoken/neo-vm/pkg/scriptcache"
	"github.com/timloh-gtoken/neo-vm/pkg/vm"
)

const (
	engineKey           = "engine"
	registryKey         = "registry"
	cacheKey            = "cache"
	breakpointsKey      = "breakpoints"
	exitFuncKey         = "exitFunc"
	readlineInstanceKey = "readlineKey"
	printLogoKey        = "printLogoKey"
)

var commands = []cli.Command{
	{Name: "exit", Usage: "Exit the VM prompt", Action: handleExit},
	{Name: "ip", Usage: "Show current instruction", Action: handleIP},
	{
		Name:      "break",
		Usage:     "Place a breakpoint",
		UsageText: `break <ip>`,
		Action:    handleBreak,
	},
	{Name: "estack", Usage: "Show evaluation stack contents", Action: handleXStack},
	{Name: "astack", Usage: "Show alt stack contents", Action: handleXStack},
	{Name: "istack", Usage: "Show invocation stack contents", Action: handleXStack},
	{
		Name:      "loadhex",
		Usage:     "Load a hex-encoded script into the VM",
		UsageText: `loadhex <string>`,
		Action:    handleLoadHex,
	},
	{
		Name:      "loadbase64",
		Usage:     "Load a base64-encoded script into the VM",
		UsageText: `loadbase64 <string>`,
		Action:    handleLoadBase64,
	},
	{
		Name:      "loadasm",
		Usage:     "Assemble a mnemonic source file and load it into the VM",
		UsageText: `loadasm <file>`,
		Action:    handleLoadAsm,
	},
	{Name: "reset", Usage: "Unload the current script from the VM", Action: handleReset},
	{
		Name:      "run",
		Usage:     "Execute the current loaded script",
		UsageText: `run`,
		Action:    handleRun,
	},
	{Name: "cont", Usage: "Continue execution of the current loaded script", Action: handleCont},
	{
		Name:      "step",
		Usage:     "Step (n) instructions in the program",
		UsageText: `step [<n>]`,
		Action:    handleStep,
	},
	{Name: "ops", Usage: "Disassemble the currently loaded script", Action: handleOps},
	{
		Name:      "parse",
		Usage:     "Convert an argument into the other formats the debugger understands",
		UsageText: `parse <arg>`,
		Action:    handleParse,
	},
	{Name: "syscalls", Usage: "Show where host calls are reported; the registered calls are not listed", Action: handleSyscalls},
}

var completer *readline.PrefixCompleter

func init() {
	var items []readline.PrefixCompleterInterface
	for _, c := range commands {
		items = append(items, readline.PcItem(c.Name))
	}
	completer = readline.NewPrefixCompleter(items...)
}

// Errors surfaced to the prompt.
var (
	ErrMissingParameter = errors.New("missing argument")
	ErrInvalidParameter = errors.New("can't parse argument")
)

// VMCLI drives a readline prompt against a single Engine.
type VMCLI struct {
	shell *cli.App
}

// New returns a VMCLI with a fresh engine, bound to the reference
// host-call registry, ready to accept input via Run.
func New(printLogotype bool, onExit func(int), rc *readline.Config, limits *config.Limits) (*VMCLI, error) {
	if rc.AutoComplete == nil {
		rc.AutoComplete = completer
	}
	l, err := readline.NewEx(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}

	app := cli.NewApp()
	app.Name = "svm"
	app.HelpName = ""
	app.UsageText = ""
	app.Writer = l.Stdout()
	app.ErrWriter = l.Stderr()
	app.Usage = "stack VM debugger"
	app.ExitErrHandler = func(*cli.Context, error) {}
	app.Commands = commands

	log, err := zap.NewDevelopment()
	if err != nil {
		log = zap.NewNop()
	}

	registry := hostcall.NewRegistry(log)
	if err := hostcall.RegisterDefaults(registry); err != nil {
		return nil, fmt.Errorf("failed to register default host calls: %w", err)
	}
	engine := vm.NewEngine(limits)
	registry.Bind(engine)

	cache, err := scriptcache.New(scriptcache.DefaultSize)
	if err != nil {
		return nil, fmt.Errorf("failed to build script cache: %w", err)
	}

	app.Metadata = map[string]interface{}{
		engineKey:           engine,
		registryKey:         registry,
		cacheKey:            cache,
		breakpointsKey:      map[int]bool{},
		exitFuncKey:         onExit,
		readlineInstanceKey: l,
		printLogoKey:        printLogotype,
	}
	changePrompt(app)
	return &VMCLI{shell: app}, nil
}

func getEngine(app *cli.App) *vm.Engine { return app.Metadata[engineKey].(*vm.Engine) }
func getCache(app *cli.App) *scriptcache.Cache {
	return app.Metadata[cacheKey].(*scriptcache.Cache)
}
func getRegistry(app *cli.App) *hostcall.Registry { return app.Metadata[registryKey].(*hostcall.Registry) }
func getBreakpoints(app *cli.App) map[int]bool {
	return app.Metadata[breakpointsKey].(map[int]bool)
}
func getReadline(app *cli.App) *readline.Instance {
	return app.Metadata[readlineInstanceKey].(*readline.Instance)
}
func getExitFunc(app *cli.App) func(int) { return app.Metadata[exitFuncKey].(func(int)) }
func getPrintLogo(app *cli.App) bool     { return app.Metadata[printLogoKey].(bool) }

func checkReady(app *cli.App) bool {
	if !getEngine(app).Ready() {
		writeErr(app.Writer, errors.New("VM is not ready: no program loaded"))
		return false
	}
	return true
}

func handleExit(c *cli.Context) error {
	l := getReadline(c.App)
	_ = l.Close()
	fmt.Fprintln(c.App.Writer, "Bye!")
	getExitFunc(c.App)(0)
	return nil
}

func handleIP(c *cli.Context) error {
	if !checkReady(c.App) {
		return nil
	}
	ctx := getEngine(c.App).CurrentContext()
	ip, op := ctx.NextInstr()
	if ip < ctx.LenInstr() {
		fmt.Fprintf(c.App.Writer, "instruction pointer at %d (%s)\n", ip, op)
	} else {
		fmt.Fprintln(c.App.Writer, "execution has finished")
	}
	return nil
}

func handleBreak(c *cli.Context) error {
	if !checkReady(c.App) {
		return nil
	}
	args := c.Args()
	if len(args) != 1 {
		return fmt.Errorf("%w: <ip>", ErrMissingParameter)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, err)
	}
	getBreakpoints(c.App)[n] = true
	fmt.Fprintf(c.App.Writer, "breakpoint added at instruction %d\n", n)
	return nil
}

func handleXStack(c *cli.Context) error {
	e := getEngine(c.App)
	if !e.Ready() {
		fmt.Fprintln(c.App.Writer, "no program loaded")
		return nil
	}
	snap := e.CurrentContext().Snapshot()
	switch c.Command.Name {
	case "estack":
		fmt.Fprintln(c.App.Writer, renderStack(snap.EvaluationStack))
	case "astack":
		fmt.Fprintln(c.App.Writer, renderStack(snap.AltStack))
	case "istack":
		frames, _ := e.Snapshot()
		for i := len(frames) - 1; i >= 0; i-- {
			fmt.Fprintf(c.App.Writer, "frame %d: ip=%d next=%s\n", i, frames[i].InstructionPointer, frames[i].NextInstruction)
		}
	default:
		return errors.New("unknown stack")
	}
	return nil
}

func renderStack(items []map[string]any) string {
	if len(items) == 0 {
		return "<empty>"
	}
	var b strings.Builder
	for i, it := range items {
		fmt.Fprintf(&b, "%02d: %v %v\n", i, it["type"], it["value"])
	}
	return strings.TrimRight(b.String(), "\n")
}

func handleLoadHex(c *cli.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return fmt.Errorf("%w: <string>", ErrMissingParameter)
	}
	b, err := hex.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, err)
	}
	return loadScript(c, b)
}

func handleLoadBase64(c *cli.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return fmt.Errorf("%w: <string>", ErrMissingParameter)
	}
	b, err := base64.StdEncoding.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, err)
	}
	return loadScript(c, b)
}

func handleLoadAsm(c *cli.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return fmt.Errorf("%w: <file>", ErrMissingParameter)
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	b, err := asm.Assemble(string(src))
	if err != nil {
		return fmt.Errorf("failed to assemble: %w", err)
	}
	return loadScript(c, b)
}

func loadScript(c *cli.Context, script []byte) error {
	resetEngine(c.App)
	_, err := scriptcache.Load(getEngine(c.App), getCache(c.App), script, -1)
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}
	ctx := getEngine(c.App).CurrentContext()
	fmt.Fprintf(c.App.Writer, "READY: loaded %d bytes\n", ctx.LenInstr())
	changePrompt(c.App)
	return nil
}

func handleReset(c *cli.Context) error {
	resetEngine(c.App)
	changePrompt(c.App)
	return nil
}

// resetEngine replaces the bound engine with a fresh one so a new
// script starts from a clean invocation stack and reference tracker,
// keeping the same host-call registry and breakpoints.
func resetEngine(app *cli.App) {
	limits := getEngine(app).Limits()
	e := vm.NewEngine(limits)
	getRegistry(app).Bind(e)
	app.Metadata[engineKey] = e
}

func handleRun(c *cli.Context) error {
	if !checkReady(c.App) {
		return nil
	}
	runWithBreakpoints(c)
	changePrompt(c.App)
	return nil
}

func handleCont(c *cli.Context) error {
	if !checkReady(c.App) {
		return nil
	}
	runWithBreakpoints(c)
	changePrompt(c.App)
	return nil
}

func handleStep(c *cli.Context) error {
	if !checkReady(c.App) {
		return nil
	}
	n := 1
	if args := c.Args(); len(args) > 0 {
		var err error
		n, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidParameter, err)
		}
	}
	e := getEngine(c.App)
	if e.State() == vm.BREAK {
		e.SetState(vm.NONE)
	}
	for i := 0; i < n && e.State() == vm.NONE; i++ {
		e.Step()
	}
	if e.State() == vm.NONE {
		e.SetState(vm.BREAK)
	}
	reportOutcome(c)
	changePrompt(c.App)
	return nil
}

// runWithBreakpoints drives the engine exactly like Engine.Execute, but
// also stops in BREAK state when the next instruction's offset is a
// registered breakpoint. Breakpoints are purely a CLI concern: the core
// has no notion of them.
func runWithBreakpoints(c *cli.Context) {
	e := getEngine(c.App)
	breakpoints := getBreakpoints(c.App)
	if e.State() == vm.BREAK {
		e.SetState(vm.NONE)
	}
	for e.State() == vm.NONE {
		e.Step()
		if e.State() != vm.NONE {
			break
		}
		if ctx := e.CurrentContext(); ctx != nil {
			if ip, _ := ctx.NextInstr(); breakpoints[ip] {
				e.SetState(vm.BREAK)
				break
			}
		}
	}
	reportOutcome(c)
}

func reportOutcome(c *cli.Context) {
	e := getEngine(c.App)
	switch {
	case e.HasFailed():
		fmt.Fprintln(c.App.ErrWriter, "FAULT")
	case e.HasHalted():
		_, result := e.Snapshot()
		fmt.Fprintln(c.App.Writer, renderStack(result))
	case e.State() == vm.BREAK:
		ctx := e.CurrentContext()
		ip, op := ctx.NextInstr()
		fmt.Fprintf(c.App.Writer, "at breakpoint %d (%s)\n", ip, op)
	}
}

func handleOps(c *cli.Context) error {
	if !checkReady(c.App) {
		return nil
	}
	ctx := getEngine(c.App).CurrentContext()
	out, err := asm.Disassemble(ctx.Script())
	if err != nil {
		return err
	}
	fmt.Fprint(c.App.Writer, out)
	return nil
}

func handleSyscalls(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, "registered host calls are logged at debug level as they're invoked; see --help for registering your own via hostcall.Registry")
	return nil
}

func changePrompt(app *cli.App) {
	e := getEngine(app)
	l := getReadline(app)
	if e.Ready() {
		ip, _ := e.CurrentContext().NextInstr()
		l.SetPrompt(fmt.Sprintf("\033[32mNEO-VM %d >\033[0m ", ip))
	} else {
		l.SetPrompt("\033[32mNEO-VM >\033[0m ")
	}
}

// Run waits for user input from stdin and executes the passed command.
func (c *VMCLI) Run() error {
	if getPrintLogo(c.shell) {
		printLogo(c.shell.Writer)
		fmt.Fprintf(c.shell.Writer, "session %s\n\n", getRegistry(c.shell).ID())
	}
	l := getReadline(c.shell)
	for {
		line, err := l.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		args, err := shellquote.Split(line)
		if err != nil {
			writeErr(c.shell.ErrWriter, fmt.Errorf("failed to parse arguments: %w", err))
			continue
		}
		if len(args) == 0 {
			continue
		}
		if err := c.shell.Run(append([]string{"svm"}, args...)); err != nil {
			writeErr(c.shell.ErrWriter, err)
		}
	}
}

func handleParse(c *cli.Context) error {
	res, err := Parse(c.Args())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, res)
	return nil
}

// Parse renders arg in the handful of formats useful while debugging a
// script: as a little-endian integer encoding, hex, base64, and base58.
func Parse(args []string) (string, error) {
	if len(args) < 1 {
		return "", ErrMissingParameter
	}
	arg := args[0]
	var b strings.Builder
	if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
		bs := bigint.ToBytes(big.NewInt(n))
		fmt.Fprintf(&b, "Integer to hex\t%s\n", hex.EncodeToString(bs))
	}
	if rawStr, err := hex.DecodeString(strings.TrimPrefix(arg, "0x")); err == nil {
		fmt.Fprintf(&b, "Hex to string\t%q\n", string(rawStr))
		fmt.Fprintf(&b, "Hex to base64\t%s\n", base64.StdEncoding.EncodeToString(rawStr))
		fmt.Fprintf(&b, "Hex to base58\t%s\n", base58.Encode(rawStr))
	}
	if rawStr, err := base64.StdEncoding.DecodeString(arg); err == nil {
		fmt.Fprintf(&b, "Base64 to string\t%q\n", string(rawStr))
		fmt.Fprintf(&b, "Base64 to hex\t%s\n", hex.EncodeToString(rawStr))
	}
	if rawStr, err := base58.Decode(arg); err == nil {
		fmt.Fprintf(&b, "Base58 to hex\t%s\n", hex.EncodeToString(rawStr))
	}
	fmt.Fprintf(&b, "String to hex\t%s\n", hex.EncodeToString([]byte(arg)))
	fmt.Fprintf(&b, "String to base64\t%s\n", base64.StdEncoding.EncodeToString([]byte(arg)))
	fmt.Fprintf(&b, "String to base58\t%s\n", base58.Encode([]byte(arg)))
	return b.String(), nil
}

const logo = `
    _   ____________        __________      _    ____  ___
   / | / / ____/ __ \      / ____/ __ \    | |  / /  |/  /
  /  |/ / __/ / / / /_____/ / __/ / / /____| | / / /|_/ /
 / /|  / /___/ /_/ /_____/ /_/ / /_/ /_____/ |/ / /  / /
/_/ |_/_____/\____/      \____/\____/      |___/_/  /_/
`

func printLogo(w io.Writer) {
	fmt.Fprint(w, logo)
	fmt.Fprintln(w)
}

func writeErr(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", err)
}
