package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"缺少批次", MissingBatch(), KindValidation},
		{"重复名称", DuplicateName("name", "batch"), KindValidation},
		{"存在依赖", HasDependents("batch"), KindDependency},
		{"默认方向", DefaultStream("Web Development"), KindDependency},
		{"不存在", NotFound("intern"), KindNotFound},
		{"远端失败", Remote("insert intern", errors.New("boom")), KindRemote},
		{"包装后", fmt.Errorf("ctx: %w", MissingBatch()), KindValidation},
		{"普通错误", errors.New("plain"), KindRemote},
		{"nil", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Errorf("期望 %v，实际: %v", tc.want, got)
			}
		})
	}
}

func TestSentinelMatching(t *testing.T) {
	if !errors.Is(MissingBatch(), ErrMissingBatch) {
		t.Error("MissingBatch 应匹配 ErrMissingBatch")
	}
	if !errors.Is(fmt.Errorf("wrap: %w", HasDependents("stream")), ErrHasDependents) {
		t.Error("包装后的 HasDependents 应匹配 ErrHasDependents")
	}
	if !errors.Is(NotFound("batch"), ErrNotFound) {
		t.Error("NotFound 应匹配 ErrNotFound")
	}

	cause := errors.New("connection reset")
	remote := Remote("list interns", cause)
	if !errors.Is(remote, ErrRemote) {
		t.Error("Remote 应匹配 ErrRemote")
	}
	if !errors.Is(remote, cause) {
		t.Error("Remote 应保留原始错误")
	}
	if errors.Is(remote, ErrNotFound) {
		t.Error("Remote 不应匹配 ErrNotFound")
	}
}

func TestError_Message(t *testing.T) {
	e := HasDependents("batch")
	want := "Cannot delete batch with interns. Archive it instead."
	if e.Error() != want {
		t.Errorf("期望 %q，实际: %q", want, e.Error())
	}

	r := Remote("save evaluation", errors.New("timeout"))
	if r.Error() != "save evaluation failed: timeout" {
		t.Errorf("远端错误文案不符: %q", r.Error())
	}
}
