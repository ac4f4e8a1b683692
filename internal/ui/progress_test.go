package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/nalgeon/be"

	"lev/internal/buildpipeline"
)

func feed(m *progressModel, evs ...buildpipeline.Event) {
	for _, ev := range evs {
		m.Update(eventMsg(ev))
	}
}

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan buildpipeline.Event)
	m := NewProgressModel("check", []string{"a.lev"}, events).(*progressModel)

	feed(m,
		buildpipeline.Event{Stage: buildpipeline.StageCheck, Status: buildpipeline.StatusWorking},
		buildpipeline.Event{File: "a.lev", Stage: buildpipeline.StageCheck, Status: buildpipeline.StatusWorking},
		buildpipeline.Event{File: "b.lev", Stage: buildpipeline.StageCheck, Status: buildpipeline.StatusQueued},
	)
	be.Equal(t, len(m.items), 2)
	be.Equal(t, m.items[0].status, "checking")
	be.Equal(t, m.summary(), "0/2 files")
	be.Equal(t, m.percent(), 0.4)

	feed(m,
		buildpipeline.Event{File: "a.lev", Stage: buildpipeline.StageCheck, Status: buildpipeline.StatusCached},
		buildpipeline.Event{File: "b.lev", Stage: buildpipeline.StageCheck, Status: buildpipeline.StatusError},
	)
	be.Equal(t, m.summary(), "2/2 files, 1 failed")
	be.Equal(t, m.percent(), 1.0)

	m.Update(doneMsg{})
	view := m.View()
	be.True(t, strings.Contains(view, "done: check 2/2 files, 1 failed (checking)"))
	be.True(t, strings.Contains(view, "cached"))
	be.True(t, strings.Contains(view, "b.lev"))
}

func TestProgressModelEmpty(t *testing.T) {
	m := NewProgressModel("build", nil, nil)
	be.Equal(t, m.View(), "")
}

func TestTruncate(t *testing.T) {
	be.Equal(t, truncate("short.lev", 20), "short.lev")
	be.Equal(t, truncate("very/long/path/file.lev", 10), "very/lo...")
	be.Equal(t, truncate("путь/файл.lev", 3), "пут")
	for _, w := range []int{4, 8, 12} {
		be.Equal(t, runewidth.StringWidth(truncate("src/nested/dir/main.lev", w)), w)
	}
}
