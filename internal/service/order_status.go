package service

import (
	"fmt"
	"strings"

	"github.com/rasoi-next/internal/constants"
)

// orderStatusFlow 订单状态的先后顺序
var orderStatusFlow = []string{
	constants.OrderStatusPending,
	constants.OrderStatusConfirmed,
	constants.OrderStatusPreparing,
	constants.OrderStatusReady,
	constants.OrderStatusOutForDelivery,
	constants.OrderStatusDelivered,
}

// allowedTransitions 状态只能向后流转，允许跳过中间状态，不可回退
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed:      true,
		constants.OrderStatusPreparing:      true,
		constants.OrderStatusReady:          true,
		constants.OrderStatusOutForDelivery: true,
		constants.OrderStatusDelivered:      true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusPreparing:      true,
		constants.OrderStatusReady:          true,
		constants.OrderStatusOutForDelivery: true,
		constants.OrderStatusDelivered:      true,
	},
	constants.OrderStatusPreparing: {
		constants.OrderStatusReady:          true,
		constants.OrderStatusOutForDelivery: true,
		constants.OrderStatusDelivered:      true,
	},
	constants.OrderStatusReady: {
		constants.OrderStatusOutForDelivery: true,
		constants.OrderStatusDelivered:      true,
	},
	constants.OrderStatusOutForDelivery: {
		constants.OrderStatusDelivered: true,
	},
}

// OrderStatusFlow 返回状态顺序
func OrderStatusFlow() []string {
	out := make([]string, len(orderStatusFlow))
	copy(out, orderStatusFlow)
	return out
}

func normalizeOrderStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// orderStatusRank 状态序号，未知状态返回 -1
func orderStatusRank(status string) int {
	status = normalizeOrderStatus(status)
	for idx, item := range orderStatusFlow {
		if item == status {
			return idx
		}
	}
	return -1
}

func isKnownOrderStatus(status string) bool {
	return orderStatusRank(status) >= 0
}

// CanTransition 判断状态流转是否合法
func CanTransition(from, to string) bool {
	return allowedTransitions[normalizeOrderStatus(from)][normalizeOrderStatus(to)]
}

func validateTransition(from, to string) error {
	if !isKnownOrderStatus(to) {
		return ErrInvalidOrderStatus
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// statusTimestampColumn 各状态对应的时间字段
func statusTimestampColumn(status string) string {
	switch status {
	case constants.OrderStatusConfirmed:
		return "confirmed_at"
	case constants.OrderStatusPreparing:
		return "preparing_at"
	case constants.OrderStatusReady:
		return "ready_at"
	case constants.OrderStatusOutForDelivery:
		return "out_for_delivery_at"
	case constants.OrderStatusDelivered:
		return "delivered_at"
	}
	return ""
}

// isTerminalOrderStatus 终态不再流转
func isTerminalOrderStatus(status string) bool {
	return len(allowedTransitions[normalizeOrderStatus(status)]) == 0
}
