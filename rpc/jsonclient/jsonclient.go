// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonclient json rpc 客户端
package jsonclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/33cn/wager/types"
	"github.com/pkg/errors"
)

// JSONClient a object of jsonclient
type JSONClient struct {
	url    string
	prefix string
	client *http.Client
}

// NewJSONClient produce a json object, method 默认加上 Chain33. 前缀
func NewJSONClient(url string) (*JSONClient, error) {
	return NewJSONClientWithPrefix("Chain33", url)
}

// NewJSONClientWithPrefix 指定服务名
func NewJSONClientWithPrefix(prefix, url string) (*JSONClient, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	return &JSONClient{url: url, prefix: prefix, client: &http.Client{Timeout: 30 * time.Second}}, nil
}

type clientRequest struct {
	Method string         `json:"method"`
	Params [1]interface{} `json:"params"`
	ID     uint64         `json:"id"`
}

type clientResponse struct {
	ID     uint64           `json:"id"`
	Result *json.RawMessage `json:"result"`
	Error  interface{}      `json:"error"`
}

func addPrefix(prefix, name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return prefix + "." + name
}

// Call jsonclient call method.
// 服务端返回的错误信息尽量还原为已注册的错误, 调用者可以用 errors.Cause 比较
func (client *JSONClient) Call(method string, params, resp interface{}) error {
	req := &clientRequest{Method: addPrefix(client.prefix, method)}
	req.Params[0] = params
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	postresp, err := client.client.Post(client.url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer postresp.Body.Close()
	b, err := io.ReadAll(postresp.Body)
	if err != nil {
		return err
	}
	cresp := &clientResponse{}
	if err := json.Unmarshal(b, cresp); err != nil {
		return errors.Wrapf(types.ErrDecode, "response %s", string(b))
	}
	if cresp.Error != nil {
		x, ok := cresp.Error.(string)
		if !ok {
			return fmt.Errorf("invalid error %v", cresp.Error)
		}
		if x == "" {
			x = "unspecified error"
		}
		return types.ParseError(x)
	}
	if cresp.Result == nil {
		return types.ErrNotFound
	}
	return json.Unmarshal(*cresp.Result, resp)
}
