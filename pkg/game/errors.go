package game

import "errors"

// ErrMissingDependency 必需的协作者未注入
// 属于集成错误，初始化时直接返回，不在运行期降级处理
var ErrMissingDependency = errors.New("missing required dependency")
