package tts

import "testing"

func TestNewEngine_Selection(t *testing.T) {
	e, err := NewEngine(EngineConfig{Name: "edge"})
	if err != nil {
		t.Fatalf("edge: %v", err)
	}
	if edge, ok := e.(*EdgeEngine); !ok || edge.voice != defaultEdgeVoice {
		t.Errorf("expected EdgeEngine with default voice, got %#v", e)
	}

	e, err = NewEngine(EngineConfig{Name: "Piper", Piper: PiperConfig{ModelPath: "/m.onnx"}})
	if err != nil {
		t.Fatalf("piper: %v", err)
	}
	if p, ok := e.(*PiperEngine); !ok || p.binary != "piper" {
		t.Errorf("expected PiperEngine using PATH binary, got %#v", e)
	}

	if _, ok := mustEngine(t, EngineConfig{Name: "say", Say: SayConfig{Voice: "Samantha"}}).(*SayEngine); !ok {
		t.Error("expected SayEngine")
	}
}

func TestNewEngine_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  EngineConfig
	}{
		{"unknown engine", EngineConfig{Name: "espeak"}},
		{"piper without model", EngineConfig{Name: "piper"}},
		{"sherpa without model dir", EngineConfig{Name: "sherpa"}},
		{"tencent without credentials", EngineConfig{Name: "tencent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEngine(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func mustEngine(t *testing.T, cfg EngineConfig) Engine {
	t.Helper()
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine(%s): %v", cfg.Name, err)
	}
	return e
}
