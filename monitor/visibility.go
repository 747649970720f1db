/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-16
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-05
 * @FilePath: \go-poslink\monitor\visibility.go
 * @Description: 收银界面可见性抽象
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package monitor

import (
	"sync"
)

// Visibility 收银界面可见性接口
// 界面隐藏时跳过周期检查，恢复可见时立即触发一次检查
type Visibility interface {
	// Visible 当前界面是否可见
	Visible() bool

	// OnVisibilityChange 注册可见性变化回调，返回注销函数
	OnVisibilityChange(f func(visible bool)) (cancel func())
}

// AlwaysVisible 恒定可见的实现（无界面环境使用）
type AlwaysVisible struct{}

// Visible 恒为 true
func (AlwaysVisible) Visible() bool {
	return true
}

// OnVisibilityChange 无变化，返回空注销函数
func (AlwaysVisible) OnVisibilityChange(f func(visible bool)) func() {
	return func() {}
}

// ManualVisibility 手动控制的可见性实现
// 由宿主程序在界面切换时调用 Set 驱动
type ManualVisibility struct {
	mu        sync.Mutex
	visible   bool
	nextID    int
	callbacks map[int]func(visible bool)
}

// NewManualVisibility 创建手动可见性控制器
func NewManualVisibility(visible bool) *ManualVisibility {
	return &ManualVisibility{
		visible:   visible,
		callbacks: make(map[int]func(visible bool)),
	}
}

// Visible 当前是否可见
func (v *ManualVisibility) Visible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

// Set 更新可见性状态，变化时通知所有注册回调
func (v *ManualVisibility) Set(visible bool) {
	v.mu.Lock()
	if v.visible == visible {
		v.mu.Unlock()
		return
	}
	v.visible = visible
	callbacks := make([]func(bool), 0, len(v.callbacks))
	for _, f := range v.callbacks {
		callbacks = append(callbacks, f)
	}
	v.mu.Unlock()

	for _, f := range callbacks {
		f(visible)
	}
}

// OnVisibilityChange 注册可见性变化回调
func (v *ManualVisibility) OnVisibilityChange(f func(visible bool)) func() {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.callbacks[id] = f
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.callbacks, id)
		v.mu.Unlock()
	}
}
