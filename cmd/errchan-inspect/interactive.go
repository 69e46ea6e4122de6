package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wasmkit/errchan"
	"github.com/wasmkit/errchan/runtime"
)

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

type interactiveModel struct {
	err      error
	rt       *runtime.Runtime
	module   *runtime.Module
	instance *runtime.Instance
	filename string
	result   string
	failure  *errchan.Error
	funcs    []string
	input    textinput.Model
	selected int
	state    modelState
}

type loadedMsg struct {
	err   error
	rt    *runtime.Runtime
	mod   *runtime.Module
	funcs []string
}

type callResultMsg struct {
	failure *errchan.Error
	result  string
}

func runInteractive(filename string) error {
	m := &interactiveModel{filename: filename, state: stateSelectFunc}
	_, err := tea.NewProgram(m, tea.WithOutput(os.Stdout)).Run()
	return err
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadModule
}

func (m *interactiveModel) loadModule() tea.Msg {
	ctx := context.Background()

	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}

	rt, err := runtime.New(ctx)
	if err != nil {
		return loadedMsg{err: err}
	}

	mod, err := rt.Load(ctx, data)
	if err != nil {
		rt.Close(ctx)
		return loadedMsg{err: err}
	}

	return loadedMsg{rt: rt, mod: mod, funcs: mod.Exports()}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			ctx := context.Background()
			if m.instance != nil {
				m.instance.Close(ctx)
			}
			if m.rt != nil {
				m.rt.Close(ctx)
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.funcs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				m.input = textinput.New()
				m.input.Placeholder = "integer args, comma-separated (empty for none)"
				m.input.Width = 48
				m.input.Focus()
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.callFunction

			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.failure = nil
			}

		case "esc":
			switch m.state {
			case stateInputArgs, stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.failure = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rt = msg.rt
		m.module = msg.mod
		m.funcs = msg.funcs

	case callResultMsg:
		m.result = msg.result
		m.failure = msg.failure
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) callFunction() tea.Msg {
	ctx := context.Background()

	if m.instance == nil {
		inst, err := m.module.Instantiate(ctx)
		if err != nil {
			return callResultMsg{failure: errchan.Wrap(err)}
		}
		m.instance = inst
	}

	args, err := parseArgs(strings.TrimSpace(m.input.Value()))
	if err != nil {
		return callResultMsg{failure: errchan.Wrap(err)}
	}

	values, e := m.instance.Invoke(ctx, m.funcs[m.selected], args...).Unpack()
	if e != nil {
		return callResultMsg{failure: e}
	}
	return callResultMsg{result: fmt.Sprintf("%v", values)}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("errchan-inspect: " + m.filename))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("q to quit"))
		return b.String()
	}

	if m.funcs == nil {
		b.WriteString("loading...\n")
		return b.String()
	}

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Exported functions:\n")
		for i, name := range m.funcs {
			cursor := "  "
			line := funcStyle.Render(name)
			if i == m.selected {
				cursor = "> "
				line = titleStyle.Render(name)
			}
			b.WriteString(cursor + line + "\n")
		}
		b.WriteString("\n" + helpStyle.Render("up/down select, enter invoke, q quit"))

	case stateInputArgs:
		b.WriteString(funcStyle.Render(m.funcs[m.selected]) + "\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n" + helpStyle.Render("enter invoke, esc back"))

	case stateShowResult:
		b.WriteString(funcStyle.Render(m.funcs[m.selected]) + "\n\n")
		if m.failure != nil {
			b.WriteString(errorStyle.Render(m.failure.Text()))
		} else {
			b.WriteString(resultStyle.Render("= " + m.result))
		}
		b.WriteString("\n\n" + helpStyle.Render("enter/esc back, q quit"))
	}

	return b.String()
}
