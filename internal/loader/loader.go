// Package loader 读取上游导出工具产出的聊天数据包。
package loader

import (
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/chatrewind/internal/errors"
	"github.com/sjzar/chatrewind/internal/model"
)

// Load 读取并解析数据文件，消息按时间戳稳定排序后返回。
func Load(path string) (*model.ChatData, error) {
	if path == "" {
		return nil, errors.InvalidArg("data file path")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.OpenFileFailed(path, err)
	}
	defer f.Close()

	data, err := Parse(f)
	if err != nil {
		return nil, errors.ParseDataFailed(path, err)
	}

	log.Debug().
		Str("path", path).
		Int("messages", len(data.Messages)).
		Int("members", len(data.GroupMembers)).
		Msg("chat data loaded")
	return data, nil
}

// Parse 从流中解码数据包。
// 输入消息不保证有序，这里按 CreateTime 稳定排序，同秒消息保持原始顺序。
func Parse(r io.Reader) (*model.ChatData, error) {
	var data model.ChatData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, err
	}
	if len(data.Messages) == 0 {
		return nil, errors.ErrNoMessages
	}

	messages := data.Messages[:0]
	for _, msg := range data.Messages {
		if msg == nil {
			continue
		}
		messages = append(messages, msg)
	}
	data.Messages = messages

	sort.SliceStable(data.Messages, func(i, j int) bool {
		return data.Messages[i].CreateTime < data.Messages[j].CreateTime
	})
	return &data, nil
}
