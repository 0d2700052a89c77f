package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"staffly/models"
)

// BuildOrgChart arranges employees into a forest by ReportsTo. Employees with
// no manager, or a manager outside the list, are roots. Stored data may still
// contain a cycle; the first member of such a loop reached in input order is
// promoted to root and the loop is cut where it returns to it.
func BuildOrgChart(employees []models.Employee) []*models.OrgNode {
	known := make(map[primitive.ObjectID]bool, len(employees))
	for _, e := range employees {
		known[e.ID] = true
	}

	children := make(map[primitive.ObjectID][]int)
	var roots []int
	for i, e := range employees {
		if e.ReportsTo == nil || !known[*e.ReportsTo] || *e.ReportsTo == e.ID {
			roots = append(roots, i)
			continue
		}
		children[*e.ReportsTo] = append(children[*e.ReportsTo], i)
	}

	visited := make(map[primitive.ObjectID]bool, len(employees))
	var build func(i int) *models.OrgNode
	build = func(i int) *models.OrgNode {
		e := employees[i]
		visited[e.ID] = true
		node := &models.OrgNode{Employee: refOf(e), Children: []*models.OrgNode{}}
		for _, c := range children[e.ID] {
			if visited[employees[c].ID] {
				continue
			}
			node.Children = append(node.Children, build(c))
		}
		return node
	}

	forest := []*models.OrgNode{}
	for _, i := range roots {
		forest = append(forest, build(i))
	}
	for i, e := range employees {
		if !visited[e.ID] {
			forest = append(forest, build(i))
		}
	}
	return forest
}

func refOf(e models.Employee) models.EmployeeRef {
	return models.EmployeeRef{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		EmployeeCode: e.EmployeeCode,
		Department:   e.Department,
	}
}
