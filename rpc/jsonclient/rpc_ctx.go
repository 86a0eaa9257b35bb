// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonclient

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/33cn/wager/types"
)

// RpcCtx rpc ctx interface
type RpcCtx struct {
	Addr   string
	Method string
	Params interface{}
	Res    interface{}
	cb     Callback
}

// Callback a callback function
type Callback func(res interface{}) (interface{}, error)

// NewRpcCtx produce a object of rpcctx
func NewRpcCtx(laddr, method string, params, res interface{}) *RpcCtx {
	return &RpcCtx{
		Addr:   laddr,
		Method: method,
		Params: params,
		Res:    res,
	}
}

// SetResultCb rpcctx callback
func (c *RpcCtx) SetResultCb(cb Callback) {
	c.cb = cb
}

// RunResult  format rpc result
func (c *RpcCtx) RunResult() (interface{}, error) {
	rpc, err := NewJSONClient(c.Addr)
	if err != nil {
		return nil, err
	}
	err = rpc.Call(c.Method, c.Params, c.Res)
	if err != nil {
		return nil, err
	}
	// maybe format rpc result
	if c.cb != nil {
		return c.cb(c.Res)
	}
	return c.Res, nil
}

// Run rpcctx to runresult, 结果以 json 输出
func (c *RpcCtx) Run() {
	result, err := c.RunResult()
	if err != nil {
		PrintError(err)
		return
	}
	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(data))
}

// PrintError 输出错误以及错误码
func PrintError(err error) {
	if code := types.ErrorCode(err); code > 0 {
		fmt.Fprintf(os.Stderr, "%s (code %d): %v\n", types.ErrorName(err), code, err)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
