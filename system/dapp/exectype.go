// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/33cn/wager/types"
)

// ExecutorAction 交易 payload 的 action, 每种 action 对应一个 GetXxx 方法
type ExecutorAction interface {
	GetTy() uint32
}

// ExecutorType 执行器的 payload 描述
type ExecutorType interface {
	GetName() string
	// action 名 -> action 类型
	GetTypeMap() map[string]uint32
	GetFuncMap() map[string]reflect.Method
	DecodePayload(tx *types.Transaction) (ExecutorAction, error)
	DecodePayloadValue(tx *types.Transaction) (string, reflect.Value, error)
	ActionName(tx *types.Transaction) string
}

// ExecTypeBase ExecutorType 的通用实现, 子类只需要提供空的 action 和类型表
type ExecTypeBase struct {
	name      string
	newAction func() ExecutorAction
	typeMap   map[string]uint32
	nameMap   map[uint32]string
	funcMap   map[string]reflect.Method
	getters   map[string]reflect.Method
}

// NewExecTypeBase 初始化过程比较重量级，有很多反射, 执行器在 init 中只做一次
func NewExecTypeBase(name string, newAction func() ExecutorAction, typeMap map[string]uint32, driver interface{}) *ExecTypeBase {
	base := &ExecTypeBase{
		name:      name,
		newAction: newAction,
		typeMap:   typeMap,
		nameMap:   make(map[uint32]string),
	}
	for k, v := range typeMap {
		base.nameMap[v] = k
	}
	base.getters = ListMethod(newAction())
	base.funcMap = ListMethod(driver)
	return base
}

// GetName 执行器名
func (base *ExecTypeBase) GetName() string {
	return base.name
}

// GetTypeMap get
func (base *ExecTypeBase) GetTypeMap() map[string]uint32 {
	return base.typeMap
}

// GetFuncMap 执行器导出的方法
func (base *ExecTypeBase) GetFuncMap() map[string]reflect.Method {
	return base.funcMap
}

// DecodePayload 解码交易 payload
func (base *ExecTypeBase) DecodePayload(tx *types.Transaction) (ExecutorAction, error) {
	action := base.newAction()
	if err := types.Decode(tx.Payload, action); err != nil {
		return nil, err
	}
	return action, nil
}

// DecodePayloadValue 解码 payload 并取出 action 对应的值
func (base *ExecTypeBase) DecodePayloadValue(tx *types.Transaction) (string, reflect.Value, error) {
	action, err := base.DecodePayload(tx)
	if err != nil {
		blog.Debug("DecodePayloadValue", "execer", string(tx.Execer), "err", err)
		return "", nilValue, err
	}
	name, value := base.actionValue(action)
	if name == "" {
		return "", nilValue, types.ErrActionNotSupport
	}
	return name, value, nil
}

// ActionName 交易的 action 名, 无法解码时为 unknown
func (base *ExecTypeBase) ActionName(tx *types.Transaction) string {
	action, err := base.DecodePayload(tx)
	if err != nil {
		return "unknown"
	}
	name, _ := base.actionValue(action)
	if name == "" {
		return "unknown"
	}
	return strings.ToLower(name)
}

var nilValue = reflect.ValueOf(nil)

func (base *ExecTypeBase) actionValue(action ExecutorAction) (string, reflect.Value) {
	name, ok := base.nameMap[action.GetTy()]
	if !ok {
		return "", nilValue
	}
	getter, ok := base.getters["Get"+name]
	if !ok {
		return "", nilValue
	}
	val := getter.Func.Call([]reflect.Value{reflect.ValueOf(action)})
	if len(val) != 1 || isNilVal(val[0]) {
		return "", nilValue
	}
	return name, val[0]
}

// Is this an exported - upper case - name?
func isExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// ListMethod 列出类型的全部导出方法
func ListMethod(action interface{}) map[string]reflect.Method {
	typ := reflect.TypeOf(action)
	methods := make(map[string]reflect.Method)
	for m := 0; m < typ.NumMethod(); m++ {
		method := typ.Method(m)
		// Method must be exported.
		if method.PkgPath != "" || !isExported(method.Name) {
			continue
		}
		methods[method.Name] = method
	}
	return methods
}
