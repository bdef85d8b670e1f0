// Package live runs the scripted transcript and coaching feed of an active
// visit.
package live

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// RoleRep marks lines spoken by the sales rep. Any other role counts as the
// customer.
const RoleRep = "我"

const defaultTalkSeconds = 2

// Cue is one scripted line fired when the session clock reaches Second.
type Cue struct {
	Second   int    `yaml:"second" json:"second"`
	Role     string `yaml:"role" json:"role"`
	Text     string `yaml:"text" json:"text"`
	Tip      string `yaml:"tip,omitempty" json:"tip,omitempty"`
	Duration int    `yaml:"duration,omitempty" json:"duration,omitempty"`
}

func (c Cue) talkSeconds() int {
	if c.Duration <= 0 {
		return defaultTalkSeconds
	}
	return c.Duration
}

// Script is a set of cues keyed by second.
type Script []Cue

// DefaultScript returns the built-in logistics pitch.
func DefaultScript() Script {
	return Script{
		{Second: 5, Role: "客户", Text: "我们现在比较头疼的是最后一公里的配送费太高了。", Tip: "建议切入：展示我们的“下沉市场路由优化”数据。", Duration: 4},
		{Second: 10, Role: RoleRep, Text: "其实针对这个问题，我们刚上线的弹性路由策略可以将成本降低15%左右。", Duration: 6},
		{Second: 18, Role: "客户", Text: "哦对对，你说的那个 BC 同仓确实能解决我们的库存冗余问题。", Tip: "★ 识别到正面共鸣！建议强化 ROI 说明。", Duration: 5},
		{Second: 25, Role: "客户", Text: "如果下个月就开始试点的话，你们的技术对接最快要多久？", Tip: "关键商机！建议回答：标准 API 最快 3 天。", Duration: 4},
	}
}

// At returns the first cue scheduled for the given second.
func (s Script) At(second int) (Cue, bool) {
	for _, c := range s {
		if c.Second == second {
			return c, true
		}
	}
	return Cue{}, false
}

type scriptFile struct {
	Cues []Cue `yaml:"cues"`
}

// LoadScript reads a YAML script of the form `cues: [{second, role, text, tip, duration}]`.
// An empty path yields the default script.
func LoadScript(path string) (Script, error) {
	if path == "" {
		return DefaultScript(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}

	var file scriptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	for i, c := range file.Cues {
		if c.Second <= 0 || c.Text == "" {
			return nil, fmt.Errorf("cue %d: %w", i, ErrInvalidCue)
		}
	}

	script := Script(file.Cues)
	sort.SliceStable(script, func(i, j int) bool { return script[i].Second < script[j].Second })
	return script, nil
}
