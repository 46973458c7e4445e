package tui

import (
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/metrics"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/route"
	"github.com/charmbracelet/lipgloss"
)

const (
	greenDeliveryNote = "We club your order with nearby deliveries to reduce emissions. Your delivery driver is paid fully."
	packagingNote     = "Eco-packaging helps reduce plastic waste and decomposes naturally"
	aheadNote         = "You're already ahead of 58% of shoppers ♻️"
	nudgeNote         = "Just one greener switch can help the planet and earn you rewards! Try biodegradable packaging or alternative delivery route for rewards."
)

func carRideLine(km int) string { return fmt.Sprintf("= Skipping a %dkm car ride", km) }

func bulbLine(months int) string { return fmt.Sprintf("= Powering an LED bulb for %d months", months) }

func rewardLine(savedKg float64) string {
	return fmt.Sprintf("You earned %d%% off your next order for saving %s!", metrics.RewardDiscountPercent, metrics.Kg(savedKg))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var body string
	if m.screen == screenRoute {
		body = m.routeView()
	} else {
		body = m.cartView()
	}

	parts := []string{body}
	if m.status != "" {
		style := m.styles.Secondary
		if m.statusErr {
			style = m.styles.Error
		}
		parts = append(parts, style.Render(m.status))
	}
	parts = append(parts, m.styles.Footer.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) cartView() string {
	report := m.engine.Report()
	sections := []string{
		m.styles.Title.Render("🌱 Sustainable Checkout"),
		m.styles.Section("Your Cart", m.itemsView()),
		m.styles.Section("Delivery", m.deliveryView(report.Choices.Delivery)),
		m.styles.Section("Packaging", m.packagingView(report.Choices.Packaging)),
		m.styles.Section("Carbon Footprint", m.footprintView(report)),
		m.styles.Section("Order Summary", m.summaryView(report.Order)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) itemsView() string {
	items := m.store.Items()
	lines := make([]string, 0, len(items)*3)
	for i, item := range items {
		pointer := "  "
		name := item.Name
		if i == m.cursor {
			pointer = m.styles.Cursor.Render("› ")
			name = m.styles.Primary.Render(name)
		}
		lines = append(lines,
			fmt.Sprintf("%s%s  %s × %d", pointer, name, metrics.Rupees(item.Price), item.Quantity),
			"    "+m.styles.CarbonBadge(item.CarbonScore),
		)

		if m.info[item.ID] {
			lines = append(lines, "    "+m.styles.Muted.Render(item.CarbonReason))
		}

		if _, busy := m.pending[item.ID]; busy {
			lines = append(lines, "    "+m.styles.LoadingSpinner(m.spinner, "Swapping..."))
			continue
		}

		alt, ok := m.store.AlternativeFor(item.ID)
		if !ok {
			continue
		}
		if !m.store.IsExpanded(item.ID) {
			lines = append(lines, "    "+m.styles.Muted.Render("🌿 Greener option available (tab)"))
			continue
		}
		lines = append(lines, "    "+m.alternativeView(alt))
	}
	return strings.Join(lines, "\n")
}

func (m Model) alternativeView(alt cart.Alternative) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Success.Render("🌿 "+alt.Name),
		fmt.Sprintf("%s · %s · %s", metrics.Rupees(alt.Price), m.styles.CarbonBadge(alt.CarbonScore), alt.DurabilityIndex),
		m.styles.Primary.Render("Saves "+metrics.Kg(alt.CarbonSavings))+m.styles.Muted.Render("  (s to swap)"),
	)
	return m.styles.Panel.Render(content)
}

func (m Model) deliveryView(current cart.DeliveryOption) string {
	tabs := make([]string, len(cart.DeliveryOptions))
	active := 0
	for i, opt := range cart.DeliveryOptions {
		tabs[i] = opt.Label()
		if opt == current {
			active = i
		}
	}
	lines := []string{m.styles.Tabs(tabs, active), current.Detail()}
	if current == cart.DeliveryGreen {
		lines = append(lines, m.styles.Muted.Render(greenDeliveryNote))
	}
	return strings.Join(lines, "\n")
}

func (m Model) packagingView(current cart.PackagingOption) string {
	tabs := make([]string, len(cart.PackagingOptions))
	active := 0
	for i, opt := range cart.PackagingOptions {
		tabs[i] = opt.Label()
		if opt == current {
			active = i
		}
	}
	lines := []string{m.styles.Tabs(tabs, active)}
	if current == cart.PackagingBiodegradable {
		lines = append(lines, m.styles.Muted.Render(packagingNote))
	}
	return strings.Join(lines, "\n")
}

func (m Model) footprintView(r metrics.Report) string {
	lines := []string{m.styles.KeyValuePair("Total cart emissions", metrics.Kg(r.EmissionsKg), false)}
	if !r.Savings.HasGreenChoices {
		lines = append(lines,
			m.styles.Secondary.Render(aheadNote),
			m.styles.Muted.Render(nudgeNote),
		)
		return strings.Join(lines, "\n")
	}

	lines = append(lines, m.styles.Subtitle.Render("Carbon Savings Breakdown:"))
	for _, l := range r.Savings.Breakdown() {
		lines = append(lines, m.styles.KeyValuePair(l.Label, "-"+metrics.Kg(l.Kg), false))
	}
	lines = append(lines,
		m.styles.HorizontalRule(24),
		m.styles.KeyValuePair("Total CO₂ Saved", fmt.Sprintf("%.1fkg", r.Savings.Total), true),
		m.styles.Success.Render("🚗 "+carRideLine(r.Equivalents.CarRideKm)),
		m.styles.Success.Render("💡 "+bulbLine(r.Equivalents.BulbMonths)),
	)
	if r.RewardUnlocked {
		lines = append(lines,
			m.styles.Warning.Render("🎁 Green Reward Unlocked!"),
			m.styles.Success.Render(rewardLine(r.Savings.Total)),
		)
	}
	return strings.Join(lines, "\n")
}

func (m Model) summaryView(o metrics.OrderSummary) string {
	return strings.Join([]string{
		m.styles.KeyValuePair("Subtotal", metrics.Rupees(o.Subtotal), false),
		m.styles.KeyValuePair("Delivery", metrics.FeeLabel(o.DeliveryFee), false),
		m.styles.KeyValuePair("Packaging", metrics.FeeLabel(o.PackagingFee), false),
		m.styles.HorizontalRule(24),
		m.styles.KeyValuePair("Total", metrics.Rupees(o.Total), true),
	}, "\n")
}

func (m Model) routeView() string {
	c := route.StaticComparison()
	sections := []string{m.styles.Title.Render("⚡ AI-Optimized Green Delivery Route")}

	if m.route.Analyzing() {
		sections = append(sections, m.styles.Section("AI Optimizing Route...", lipgloss.JoinVertical(lipgloss.Left,
			m.progress.ViewAs(m.route.Fraction()),
			m.styles.Secondary.Render(fmt.Sprintf("Analyzing %d delivery points...", m.route.AnalyzedPoints())),
		)))
	}

	sections = append(sections,
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.routeCard("⚡ "+c.Fast.Name, c.Fast, m.styles.Error),
			m.routeCard("🌿 "+c.Green.Name, c.Green, m.styles.Success),
		),
		m.styles.Section("Environmental Impact", lipgloss.JoinVertical(lipgloss.Left,
			m.styles.Success.Render(fmt.Sprintf("%.1fkg CO₂ Saved", c.Impact.SavedKg))+m.styles.Muted.Render(" by choosing green delivery"),
			lipgloss.JoinHorizontal(lipgloss.Top,
				m.styles.MetricCard("Orders Batched", fmt.Sprintf("%d", c.Impact.OrdersBatched), true),
				m.styles.MetricCard("Distance Saved", fmt.Sprintf("%dkm", c.Impact.DistanceSavedKm), true),
				m.styles.MetricCard("Fuel Saved", c.Impact.FuelSaved, true),
			),
		)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) routeCard(title string, r route.Route, accent lipgloss.Style) string {
	return m.styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		accent.Render(title),
		m.styles.KeyValuePair("Distance", fmt.Sprintf("%d km", r.DistanceKm), false),
		m.styles.KeyValuePair("Delivery Time", r.DeliveryTime, false),
		m.styles.KeyValuePair("CO₂ Emissions", fmt.Sprintf("%.1f kg", r.EmissionsKg), false),
		m.styles.KeyValuePair("Deliveries Batched", r.Batched, false),
	))
}
