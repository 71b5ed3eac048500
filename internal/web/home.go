package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		writePageStart(w, "Scoreboard")
		raw(w, `      <h1>Scoreboard</h1>
      <section class="panel">
        <h2>New game</h2>
        <form id="createForm">
          <div id="users" class="muted">Loading players...</div>
          <label>Goal <input name="goal" type="number" min="0" value="`)
		text(w, itoa(data.DefaultGoal))
		raw(w, `"/></label>
          <button type="submit">Start</button>
        </form>
        <div id="createResult" class="muted"></div>
      </section>
`)
		writeGameList(w, "Games in progress", data.Unfinished, false)
		writeGameList(w, "Finished games", data.Finished, true)
		if len(data.Leaders) > 0 {
			raw(w, `      <section class="panel">
        <h2>All time</h2>
        <table>
          <tr><th>Player</th><th>Games</th><th>Points</th></tr>
`)
			for _, row := range data.Leaders {
				raw(w, `          <tr><td>`)
				text(w, row.Name)
				raw(w, `</td><td>`)
				text(w, itoa(row.Games))
				raw(w, `</td><td>`)
				text(w, itoa(row.TotalScore))
				raw(w, "</td></tr>\n")
			}
			raw(w, "        </table>\n      </section>\n")
		}
		raw(w, homeScript)
		raw(w, pageFoot)
		return nil
	})
}

func writeGameList(w io.Writer, title string, games []GameSummary, finished bool) {
	raw(w, `      <section class="panel">
        <h2>`)
	text(w, title)
	raw(w, "</h2>\n")
	if len(games) == 0 {
		raw(w, "        <p class=\"muted\">None yet.</p>\n      </section>\n")
		return
	}
	raw(w, "        <ul>\n")
	for _, game := range games {
		raw(w, "          <li>")
		if finished {
			raw(w, `<a href="/games/`)
			text(w, utoa(game.ID))
			raw(w, `/results">Game #`)
			text(w, utoa(game.ID))
			raw(w, `</a> <span class="muted">finished `)
			text(w, game.FinishedAt)
			raw(w, "</span>")
		} else {
			raw(w, `Game #`)
			text(w, utoa(game.ID))
			raw(w, ` <span class="muted">started `)
			text(w, game.CreatedAt)
			raw(w, "</span>")
		}
		raw(w, "</li>\n")
	}
	raw(w, "        </ul>\n      </section>\n")
}

const homeScript = `      <script>
        const form = document.getElementById("createForm");
        const usersBox = document.getElementById("users");
        const result = document.getElementById("createResult");

        fetch("/api/users").then((res) => res.json()).then((data) => {
          usersBox.textContent = "";
          (data.users || []).forEach((user) => {
            const label = document.createElement("label");
            const box = document.createElement("input");
            box.type = "checkbox";
            box.value = user.id;
            label.appendChild(box);
            label.appendChild(document.createTextNode(" " + user.name + " "));
            usersBox.appendChild(label);
          });
        });

        form.addEventListener("submit", async (event) => {
          event.preventDefault();
          const ids = Array.from(usersBox.querySelectorAll("input:checked")).map((box) => Number(box.value));
          const goal = Number(form.elements.goal.value) || 0;
          const res = await fetch("/api/games", {
            method: "POST",
            headers: { "Content-Type": "application/json" },
            body: JSON.stringify({ user_ids: ids, goal })
          });
          const data = await res.json();
          if (!res.ok) {
            result.textContent = data.error || "Failed to create game.";
            return;
          }
          window.location.reload();
        });
      </script>
`
